package httpapi

import (
	"net/http"

	"kesif-backend/internal/service"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleHandler 支持 http.Handler 接口（用于静态文件等）
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handlers 路由注册所需的全部 handler
type Handlers struct {
	Auth        *AuthHandler
	Influencers *InfluencersHandler
	Brands      *BrandsHandler
	Slider      *SliderHandler
	About       *AboutHandler
	SiteMeta    *SiteMetaHandler
	Logs        *LogsHandler
	Follower    *FollowerHandler
	Proposal    *ProposalHandler
	Upload      *UploadHandler
	Admins      *AdminsHandler
	Export      *ExportHandler
}

// RegisterPublicRoutes 前台公开接口
func (r *Router) RegisterPublicRoutes(h *Handlers) {
	r.Handle("/api/influencers", h.Influencers.PublicByPath)
	r.Handle("/api/influencers/", h.Influencers.PublicByPath)

	r.Handle("/api/brands", h.Brands.List)
	r.Handle("/api/slider", h.Slider.List)
	r.Handle("/api/about", h.About.Get)
	r.Handle("/api/meta", h.SiteMeta.Get)

	r.Handle("/api/follower/", h.Follower.Get)

	r.Handle("/api/teklif", h.Proposal.Submit)

	r.Handle("/api/log/page-view", h.Logs.PageView)
	r.Handle("/api/log/influencer-click", h.Logs.InfluencerClick)
}

// RegisterAdminRoutes 后台接口；除登录外全部走会话中间件
func (r *Router) RegisterAdminRoutes(h *Handlers, auth service.AuthService) {
	guard := func(next http.HandlerFunc) http.HandlerFunc {
		return RequireSession(auth, r.logger, next)
	}

	r.Handle("/api/admin/auth/login", h.Auth.Login)
	r.Handle("/api/admin/auth/logout", guard(h.Auth.Logout))

	r.Handle("/api/admin/dashboard", guard(h.Logs.Dashboard))

	r.Handle("/api/admin/influencers", guard(h.Influencers.AdminCollection))
	r.Handle("/api/admin/influencers/details", guard(h.Influencers.UpsertDetails))
	r.Handle("/api/admin/influencers/export", guard(h.Export.Influencers))
	r.Handle("/api/admin/specialties", guard(h.Influencers.Specialties))

	r.Handle("/api/admin/brands", guard(h.Brands.AdminCollection))

	r.Handle("/api/admin/slider", guard(h.Slider.AdminCollection))
	r.Handle("/api/admin/slider/move", guard(h.Slider.Move))

	r.Handle("/api/admin/about/", guard(h.About.AdminByPath))

	r.Handle("/api/admin/meta", guard(h.SiteMeta.Admin))

	r.Handle("/api/admin/logs/page-views/export", guard(h.Export.PageViews))
	r.Handle("/api/admin/logs/", guard(h.Logs.AdminByPath))

	r.Handle("/api/admin/upload", guard(h.Upload.Upload))

	r.Handle("/api/admin/users", guard(h.Admins.Collection))
}
