package http

import (
	"net/http"
	"strings"
	"time"

	"studentgigs/internal/http/handlers"
	"studentgigs/internal/http/metrics"
	httpmw "studentgigs/internal/http/middleware"
	"studentgigs/internal/policy"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	AdminHandler       *handlers.AdminHandler
	MetricsHandler     *handlers.MetricsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Limiter            httpmw.Limiter
	Metrics            *metrics.Collector
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	loginLimit := httpmw.RateLimit(r.deps.Limiter, httpmw.ClientIP, 10, time.Minute)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/user":
			r.deps.UserHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/login":
			loginLimit(http.HandlerFunc(r.deps.AuthHandler.Login)).ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/logout":
			r.deps.AuthHandler.Logout(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/admin/login":
			loginLimit(http.HandlerFunc(r.deps.AdminHandler.Login)).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/api/job":
			r.deps.JobHandler.Browse(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/job/category/"):
			r.deps.JobHandler.SearchCategory(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/job/") &&
			!strings.HasPrefix(path, "/api/job/user/") &&
			!strings.HasSuffix(path, "/contact"):
			r.deps.JobHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/api/admin/") {
			protected := r.deps.AuthMiddleware.AuthenticateAdmin(http.HandlerFunc(r.handleAdmin))
			protected.ServeHTTP(w, req)
			return
		}

		if strings.HasPrefix(path, "/api/user") || strings.HasPrefix(path, "/api/job") || strings.HasPrefix(path, "/api/application") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(r.handleProtected))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/api/user":
		r.deps.UserHandler.Me(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/user/"):
		r.deps.UserHandler.Get(w, req)
		return
	case (req.Method == http.MethodPut || req.Method == http.MethodPatch) && strings.HasPrefix(path, "/api/user/"):
		r.deps.UserHandler.Update(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/user/"):
		r.deps.UserHandler.Delete(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/job":
		httpmw.RequireRole(policy.RoleEmployer)(http.HandlerFunc(r.deps.JobHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/job/user/"):
		httpmw.RequireRole(policy.RoleEmployer)(http.HandlerFunc(r.deps.JobHandler.ListByEmployer)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/job/") && strings.HasSuffix(path, "/contact"):
		r.deps.JobHandler.Contact(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/api/job/") && strings.HasSuffix(path, "/status"):
		r.deps.JobHandler.UpdateStatus(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/job/"):
		httpmw.RequireRole(policy.RoleEmployer)(http.HandlerFunc(r.deps.JobHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/job/"):
		httpmw.RequireRole(policy.RoleEmployer)(http.HandlerFunc(r.deps.JobHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/application":
		httpmw.RequireRole(policy.RoleStudent)(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/application":
		r.deps.ApplicationHandler.List(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/application/job/"):
		httpmw.RequireRole(policy.RoleEmployer)(http.HandlerFunc(r.deps.ApplicationHandler.ListByJob)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/api/application/") && strings.HasSuffix(path, "/status"):
		r.deps.ApplicationHandler.UpdateStatus(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/application/"):
		r.deps.ApplicationHandler.Get(w, req)
		return
	}

	http.NotFound(w, req)
}

func (r *Router) handleAdmin(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodPost && path == "/api/admin/logout":
		r.deps.AdminHandler.Logout(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/admin/users":
		r.deps.AdminHandler.ListUsers(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/api/admin/users/") && strings.HasSuffix(path, "/status"):
		r.deps.AdminHandler.SetUserStatus(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/admin/jobs":
		r.deps.AdminHandler.ListJobs(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/api/admin/jobs/") && strings.HasSuffix(path, "/status"):
		r.deps.AdminHandler.SetJobStatus(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/api/admin/applications/") && strings.HasSuffix(path, "/status"):
		r.deps.AdminHandler.SetApplicationStatus(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/admin/admins":
		r.deps.AdminHandler.ListAdmins(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/admin/admins":
		httpmw.RequireSuperAdmin(http.HandlerFunc(r.deps.AdminHandler.CreateAdmin)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/api/admin/admins/"):
		httpmw.RequireSuperAdmin(http.HandlerFunc(r.deps.AdminHandler.UpdateAdmin)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/admin/summary":
		r.deps.AdminHandler.Summary(w, req)
		return
	}

	http.NotFound(w, req)
}
