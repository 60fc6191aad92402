package service

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"

	"kesif-backend/internal/config"
	"kesif-backend/internal/domain"

	"go.uber.org/zap"
)

// Mailer 邮件发送。凭证为空时进入 dev 模式：不真正发信，只把验证码写进日志
type Mailer struct {
	cfg     config.SMTPConfig
	devMode bool
	logger  *zap.Logger
}

func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	devMode := cfg.Username == "" || cfg.Password == ""
	if devMode {
		logger.Warn("SMTP credentials missing, mailer running in dev mode")
	}
	return &Mailer{cfg: cfg, devMode: devMode, logger: logger}
}

// SendAccessCode 发送一次性验证码
func (m *Mailer) SendAccessCode(to, code, purpose string) error {
	var subject, title string
	switch purpose {
	case domain.CodePurposePasswordReset:
		subject, title = "Kesif Admin - Password Reset Code", "PASSWORD RESET"
	default:
		subject, title = "Kesif Admin - Login Code", "LOGIN CODE"
	}

	if m.devMode {
		m.logger.Info("Dev mode: access code not emailed",
			zap.String("to", to),
			zap.String("purpose", purpose),
			zap.String("code", code),
		)
		return nil
	}

	html := fmt.Sprintf(`<!DOCTYPE html><html><body style="margin:0;padding:0;font-family:Arial;background-color:#f5f5f5;">
<table width="100%%" border="0" cellspacing="0" cellpadding="0" bgcolor="#f5f5f5"><tr><td align="center" style="padding:40px 0;">
<table width="600" border="0" cellspacing="0" cellpadding="0" bgcolor="#ffffff" style="border-radius:16px;overflow:hidden;">
<tr><td height="8" bgcolor="#1a1a2e" style="line-height:8px;font-size:8px;">&nbsp;</td></tr>
<tr><td align="left" style="padding:35px 40px;"><h1 style="margin:0;color:#1a1a2e;font-size:24px;font-weight:bold;">KESIF COLLECTIVE</h1></td></tr>
<tr><td style="padding:10px 40px 40px 40px;"><h2 style="color:#000000;margin:0 0 10px 0;">%s</h2>
<p>Your verification code is below. It expires in 10 minutes:</p>
<table width="100%%" bgcolor="#fafafa" style="border:2px dashed #1a1a2e;border-radius:8px;"><tr><td align="center" style="padding:25px;">
<p style="font-size:42px;font-weight:bold;color:#1a1a2e;letter-spacing:10px;margin:0;">%s</p></td></tr></table>
<p style="margin-top:25px;color:#999999;font-size:13px;">If you did not request this, please ignore this email.</p></td></tr>
<tr><td align="center" bgcolor="#2c2c2c" style="padding:20px;color:#999999;font-size:12px;">© 2026 Kesif Collective</td></tr>
</table></td></tr></table></body></html>`, title, code)

	return m.send([]string{to}, subject, html)
}

// SendProposalReceived 给提交者回执：合作提案已送达
func (m *Mailer) SendProposalReceived(to, influencerName, proposal string) error {
	if m.devMode {
		m.logger.Info("Dev mode: proposal receipt not emailed",
			zap.String("to", to),
			zap.String("influencer", influencerName),
		)
		return nil
	}

	html := fmt.Sprintf(`<!DOCTYPE html><html><body style="margin:0;padding:0;font-family:Arial;background-color:#f5f5f5;">
<table width="100%%" border="0" cellspacing="0" cellpadding="0" bgcolor="#f5f5f5"><tr><td align="center" style="padding:40px 0;">
<table width="600" border="0" cellspacing="0" cellpadding="0" bgcolor="#ffffff" style="border-radius:16px;overflow:hidden;">
<tr><td height="8" bgcolor="#1a1a2e" style="line-height:8px;font-size:8px;">&nbsp;</td></tr>
<tr><td align="left" style="padding:35px 40px;"><h1 style="margin:0;color:#1a1a2e;font-size:24px;font-weight:bold;">KESIF COLLECTIVE</h1></td></tr>
<tr><td style="padding:10px 40px 40px 40px;"><h2 style="color:#000000;margin:0 0 10px 0;">Teklifiniz Iletildi</h2>
<p><strong>%s</strong> icin gonderdiginiz isbirligi teklifi basariyla iletildi. En kisa surede size donus yapilacaktir.</p>
<table width="100%%" bgcolor="#fafafa" style="border:1px solid #e0e0e0;border-radius:8px;"><tr><td style="padding:20px;">
<p style="white-space:pre-wrap;margin:0;color:#333333;">%s</p></td></tr></table></td></tr>
<tr><td align="center" bgcolor="#2c2c2c" style="padding:20px;color:#999999;font-size:12px;">© 2026 Kesif Collective</td></tr>
</table></td></tr></table></body></html>`, htmlEscape(influencerName), htmlEscape(proposal))

	return m.send([]string{to}, "Teklifiniz Iletildi - Kesif Collective", html)
}

// SendProposalNotification 给后台通知邮箱：有新的合作提案
func (m *Mailer) SendProposalNotification(influencerID int64, influencerName, userEmail, proposal string) error {
	if m.devMode {
		m.logger.Info("Dev mode: proposal notification not emailed",
			zap.Int64("influencer_id", influencerID),
			zap.String("from", userEmail),
		)
		return nil
	}

	html := fmt.Sprintf(`<!DOCTYPE html><html><body style="margin:0;padding:0;font-family:Arial;background-color:#f5f5f5;">
<table width="100%%" border="0" cellspacing="0" cellpadding="0" bgcolor="#f5f5f5"><tr><td align="center" style="padding:40px 0;">
<table width="600" border="0" cellspacing="0" cellpadding="0" bgcolor="#ffffff" style="border-radius:16px;overflow:hidden;">
<tr><td height="8" bgcolor="#1a1a2e" style="line-height:8px;font-size:8px;">&nbsp;</td></tr>
<tr><td align="left" style="padding:35px 40px;"><h1 style="margin:0;color:#1a1a2e;font-size:24px;font-weight:bold;">Yeni Isbirligi Teklifi</h1></td></tr>
<tr><td style="padding:10px 40px 40px 40px;">
<p><strong>Influencer:</strong> %s (ID: %d)</p>
<p><strong>Gonderen:</strong> %s</p>
<table width="100%%" bgcolor="#fafafa" style="border:1px solid #e0e0e0;border-radius:8px;"><tr><td style="padding:20px;">
<p style="white-space:pre-wrap;margin:0;color:#333333;">%s</p></td></tr></table></td></tr>
<tr><td align="center" bgcolor="#2c2c2c" style="padding:20px;color:#999999;font-size:12px;">Kesif Collective Admin</td></tr>
</table></td></tr></table></body></html>`,
		htmlEscape(influencerName), influencerID, htmlEscape(userEmail), htmlEscape(proposal))

	return m.send([]string{m.cfg.NotifyTo}, fmt.Sprintf("Yeni Isbirligi Teklifi - %s", influencerName), html)
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// send 拼 MIME 报文并通过 SMTP 投递
func (m *Mailer) send(to []string, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	var body bytes.Buffer
	body.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.cfg.FromName, m.cfg.From))
	body.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	body.WriteString(htmlBody)
	body.WriteString("\r\n")

	if err := smtp.SendMail(addr, auth, m.cfg.From, to, body.Bytes()); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
