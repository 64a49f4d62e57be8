package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"skillswapserver/internal/service"
)

type RouterOpts struct {
	Logger *slog.Logger
	IsProd bool

	DBPing func(context.Context) error

	Auth     *service.AuthService
	Profile  *service.ProfileService
	Users    *service.UsersService
	Swaps    *service.SwapService
	Chats    *service.ChatService
	Feedback *service.FeedbackService
}

func NewRouter(opts RouterOpts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := &api{
		logger:       logger,
		isProd:       opts.IsProd,
		dbPing:       opts.DBPing,
		authSvc:      opts.Auth,
		profileSvc:   opts.Profile,
		usersSvc:     opts.Users,
		swapSvc:      opts.Swaps,
		chatSvc:      opts.Chats,
		feedbackSvc:  opts.Feedback,
		loginLimiter: newLoginLimiter(),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", api.handleHealthz)

	if api.authSvc == nil {
		mux.HandleFunc("POST /auth/signup", handleNotImplemented)
		mux.HandleFunc("POST /auth/login", handleNotImplemented)
	} else {
		mux.HandleFunc("POST /auth/signup", api.handleSignup)
		mux.HandleFunc("POST /auth/login", api.handleLogin)

		if api.profileSvc != nil {
			mux.HandleFunc("GET /user/profile", api.requireAuth(api.handleGetProfile))
			mux.HandleFunc("PUT /user/profile", api.requireAuth(api.handleUpdateProfile))
		}

		if api.usersSvc != nil {
			mux.HandleFunc("GET /users", api.optionalAuth(api.handleBrowseUsers))
			mux.HandleFunc("GET /users/search", api.optionalAuth(api.handleSearchUsers))
			mux.HandleFunc("GET /users/{id}", api.optionalAuth(api.handlePublicProfile))
		}

		if api.swapSvc != nil {
			mux.HandleFunc("GET /users/{id}/swap-options", api.requireAuth(api.handleSwapOptions))
			mux.HandleFunc("POST /swap-requests", api.requireAuth(api.handleCreateSwap))
			mux.HandleFunc("GET /swap-requests", api.requireAuth(api.handleListSwaps))
			mux.HandleFunc("POST /swap-requests/{id}/accept", api.requireAuth(api.handleAcceptSwap))
			mux.HandleFunc("POST /swap-requests/{id}/reject", api.requireAuth(api.handleRejectSwap))
		}

		if api.chatSvc != nil {
			mux.HandleFunc("GET /chat/{swapId}", api.requireAuth(api.handleGetChat))
			mux.HandleFunc("POST /chat/{swapId}", api.requireAuth(api.handlePostChatMessage))
		}

		if api.feedbackSvc != nil {
			mux.HandleFunc("POST /users/{id}/feedback", api.requireAuth(api.handleCreateFeedback))
		}
	}

	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := mux.Handler(r)
		if pattern == "" {
			WriteError(w, http.StatusNotFound, "not_found", "not found")
			return
		}
		h.ServeHTTP(w, r)
	})

	var h http.Handler = root
	h = RequestLogger(logger)(h)
	h = RequestID()(h)
	h = Recoverer(logger, opts.IsProd)(h)
	return h
}

func handleNotImplemented(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotImplemented, "not_implemented", "not implemented")
}

type api struct {
	logger *slog.Logger
	isProd bool

	dbPing func(context.Context) error

	authSvc     *service.AuthService
	profileSvc  *service.ProfileService
	usersSvc    *service.UsersService
	swapSvc     *service.SwapService
	chatSvc     *service.ChatService
	feedbackSvc *service.FeedbackService

	loginLimiter *loginLimiter
}

func (a *api) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if a.dbPing != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()
		if err := a.dbPing(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db down"))
			return
		}
	}

	_, _ = w.Write([]byte("ok"))
}
