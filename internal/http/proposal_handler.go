package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ProposalMailer 合作提案邮件发送端口（由 service.Mailer 实现）
type ProposalMailer interface {
	SendProposalReceived(to, influencerName, proposal string) error
	SendProposalNotification(influencerID int64, influencerName, userEmail, proposal string) error
}

// ProposalHandler 合作提案提交：不落库，只发两封邮件（回执 + 后台通知）
type ProposalHandler struct {
	mailer ProposalMailer
	logger *zap.Logger
}

func NewProposalHandler(mailer ProposalMailer, logger *zap.Logger) *ProposalHandler {
	return &ProposalHandler{mailer: mailer, logger: logger}
}

type proposalRequest struct {
	InfluencerID   int64  `json:"influencer_id"`
	InfluencerName string `json:"influencer_name"`
	UserEmail      string `json:"user_email"`
	Proposal       string `json:"proposal"`
}

// Submit POST /api/teklif
func (h *ProposalHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req proposalRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	req.InfluencerName = strings.TrimSpace(req.InfluencerName)
	req.UserEmail = strings.TrimSpace(req.UserEmail)
	req.Proposal = strings.TrimSpace(req.Proposal)
	if req.InfluencerID == 0 || req.InfluencerName == "" || req.UserEmail == "" || req.Proposal == "" {
		writeJSON(w, http.StatusBadRequest, Fail("all fields are required"))
		return
	}

	if err := h.mailer.SendProposalReceived(req.UserEmail, req.InfluencerName, req.Proposal); err != nil {
		h.logger.Error("Send proposal receipt failed", zap.String("to", req.UserEmail), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to send proposal"))
		return
	}
	if err := h.mailer.SendProposalNotification(req.InfluencerID, req.InfluencerName, req.UserEmail, req.Proposal); err != nil {
		h.logger.Error("Send proposal notification failed", zap.Int64("influencer_id", req.InfluencerID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to send proposal"))
		return
	}

	writeJSON(w, http.StatusOK, OkMsg("proposal sent", nil))
}
