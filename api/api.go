package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"github.com/pantonshire/tweetbox/auth"
	"github.com/pantonshire/tweetbox/logging"
)

const (
	defaultFeedSize       = 4
	defaultMaxTweetLength = 280
	minPasswordLength     = 6
)

// TokenService issues and verifies session tokens.
type TokenService interface {
	Issue(identity auth.Identity) (string, error)
	Verify(token string) (auth.Identity, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type Options struct {
	FeedSize       int           `mapstructure:"feed_size"`
	MaxTweetLength int           `mapstructure:"max_tweet_length"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// API holds the dependencies shared by every handler.
type API struct {
	store      Store
	tokens     TokenService
	hasher     PasswordHasher
	authorizer *Authorizer
	log        logging.Logger
	opts       Options
	now        func() time.Time
}

func NewAPI(store Store, tokens TokenService, hasher PasswordHasher, log logging.Logger, opts Options) *API {
	if opts.FeedSize <= 0 {
		opts.FeedSize = defaultFeedSize
	}
	if opts.MaxTweetLength <= 0 {
		opts.MaxTweetLength = defaultMaxTweetLength
	}
	if log == nil {
		log = logging.Discard()
	}
	return &API{
		store:      store,
		tokens:     tokens,
		hasher:     hasher,
		authorizer: NewAuthorizer(store),
		log:        log,
		opts:       opts,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// NewRouter creates the chi router serving the whole API.
func (api *API) NewRouter() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: api.log, NoColor: true}))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	if len(api.opts.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: api.opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}
	if api.opts.RequestTimeout > 0 {
		router.Use(middleware.Timeout(api.opts.RequestTimeout))
	}

	router.Get("/healthz", api.health)
	router.Post("/register", api.register)
	router.Post("/login", api.login)

	router.Group(func(router chi.Router) {
		router.Use(auth.Middleware(api.tokens, api.unauthenticated))

		router.Route("/user", func(router chi.Router) {
			router.Get("/tweets/feed", api.feed)
			router.Get("/tweets", api.userTweets)
			router.Post("/tweets", api.createTweet)
			router.Get("/following", api.following)
			router.Post("/following/{username}", api.follow)
			router.Delete("/following/{username}", api.unfollow)
			router.Get("/followers", api.followers)
		})

		router.Route("/tweets/{tweetID}", func(router chi.Router) {
			router.Delete("/", api.deleteTweet)

			router.Group(func(router chi.Router) {
				router.Use(api.requireTweetAccess)
				router.Get("/", api.tweetDetail)
				router.Get("/likes", api.tweetLikes)
				router.Post("/likes", api.likeTweet)
				router.Get("/replies", api.tweetReplies)
				router.Post("/replies", api.replyToTweet)
			})
		})
	})

	return router
}

func (api *API) unauthenticated(writer http.ResponseWriter, request *http.Request, err error) {
	api.fail(writer, request, &Error{Kind: KindAuthentication, Message: errBadToken.Message, Err: err})
}

func (api *API) health(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 2*time.Second)
	defer cancel()
	if err := api.store.Ping(ctx); err != nil {
		api.log.Printf("health check: %v", err)
		textResponse(writer, http.StatusServiceUnavailable, "unavailable")
		return
	}
	textResponse(writer, http.StatusOK, "ok")
}
