// Package bot assembles the greeting bot: configuration, services,
// the dialogue controller, and the Telegram runtime wiring.
package bot

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/greetbot/bot/dialog"
	"github.com/m3rciful/greetbot/bot/handlers"
	"github.com/m3rciful/greetbot/bot/messenger"
	"github.com/m3rciful/greetbot/bot/service"
	"github.com/m3rciful/greetbot/bot/storage"
	"github.com/m3rciful/greetbot/core/bootstrap"
	corecmd "github.com/m3rciful/greetbot/core/cmd"
	coretelegram "github.com/m3rciful/greetbot/core/telegram"
	"github.com/m3rciful/greetbot/core/telegram/router"
	"github.com/m3rciful/greetbot/core/telegram/state"
)

// Services groups the application services built during bootstrap.
type Services struct {
	Users    *service.Users
	Messages *service.Messages
}

// App holds the initialized application state.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	services *Services
	ctrl     *dialog.Controller
	sessions *state.Store[dialog.Session]
}

// Bootstrap initializes infrastructure and services for the bot.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("bot: unexpected config type %T", carrier)
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	provider := bootstrap.TypedServiceProviderFunc[*Services](provideServices)
	services, err := provider.ProvideTyped(context.Background(), cfg, res.DB)
	if err != nil {
		_ = res.DB.Close()
		return nil, err
	}

	sessions := state.NewStore[dialog.Session]()
	ctrl := dialog.NewController(services.Users, services.Messages, sessions)

	return &App{
		cfg:      cfg,
		db:       res.DB,
		services: services,
		ctrl:     ctrl,
		sessions: sessions,
	}, nil
}

func provideServices(_ context.Context, _ interface{}, st bootstrap.Storage) (*Services, error) {
	db, ok := st.(*sqlx.DB)
	if !ok {
		return nil, fmt.Errorf("bot: unexpected storage type %T", st)
	}
	return &Services{
		Users:    service.NewUsers(storage.NewUserRepo(db)),
		Messages: service.NewMessages(storage.NewMessageRepo(db)),
	}, nil
}

// TelegramRunOptions builds the Telegram runtime configuration.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	h := handlers.New(a.ctrl, a.services.Users, a.services.Messages, a.sessions)
	h.Register(reg)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(h.FSM(), reg, router.TextOptions{
		UnknownText:     h.UnknownText(),
		UnknownDocument: h.UnknownDocument(),
	})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{
		NotFound: h.UnknownCallback(),
	}))

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.ctrl.BindMessenger(messenger.NewTelegram(rt.Bot))
			return nil
		},
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			return a.db.Close()
		},
	}, nil
}
