package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/agri-sahayak/sahayak-cli/internal/adapters/backend"
	"github.com/agri-sahayak/sahayak-cli/internal/adapters/localstore"
	"github.com/agri-sahayak/sahayak-cli/internal/adapters/voice"
	"github.com/agri-sahayak/sahayak-cli/internal/app/composer"
	"github.com/agri-sahayak/sahayak-cli/internal/app/dashboard"
	"github.com/agri-sahayak/sahayak-cli/internal/app/greeting"
	"github.com/agri-sahayak/sahayak-cli/internal/app/identity"
	"github.com/agri-sahayak/sahayak-cli/internal/app/session"
	"github.com/agri-sahayak/sahayak-cli/internal/config"
	"github.com/agri-sahayak/sahayak-cli/internal/domain"
	"github.com/agri-sahayak/sahayak-cli/internal/observability"
	"github.com/agri-sahayak/sahayak-cli/internal/tui"
)

// app bundles the wiring every command shares.
type app struct {
	cfg     *config.Config
	store   *localstore.Store
	client  *backend.Client
	catalog *greeting.Catalog
	lang    domain.LanguageCode
	theme   string
	idmgr   *identity.Manager
}

func newApp() (*app, error) {
	cfg := config.Load()
	if err := observability.Init(cfg.StateDir); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	store, err := localstore.Open(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("open local state: %w", err)
	}

	lang := greeting.NormalizeLang(cfg.Language, domain.LangEnglish)
	if v, ok := store.Get(localstore.KeyLanguage); ok {
		lang = greeting.NormalizeLang(v, lang)
	}
	theme := cfg.Theme
	if v, ok := store.Get(localstore.KeyTheme); ok {
		theme = v
	}

	client := backend.New(cfg.BackendURL, cfg.Timeout)
	catalog := greeting.NewCatalog()

	return &app{
		cfg:     cfg,
		store:   store,
		client:  client,
		catalog: catalog,
		lang:    lang,
		theme:   theme,
		idmgr:   identity.NewManager(client, store, catalog, lang),
	}, nil
}

func (a *app) requireIdentity(ctx context.Context) (identity.Identity, error) {
	ident, err := a.idmgr.Restore(ctx)
	if err != nil {
		if errors.Is(err, identity.ErrNoStoredIdentity) {
			return identity.Identity{}, errors.New("not signed in; run `sahayak login` or `sahayak signup` first")
		}
		return identity.Identity{}, err
	}
	return *ident, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sahayak",
		Short:         "Terminal client for the Agri-Sahayak advisory assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), "")
		},
	}

	root.AddCommand(
		newChatCmd(),
		newLoginCmd(),
		newSignupCmd(),
		newLogoutCmd(),
		newDashboardCmd(),
		newCallCmd(),
	)
	return root
}

func newChatCmd() *cobra.Command {
	var conversationID string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the chat interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), domain.ConversationID(conversationID))
		},
	}
	cmd.Flags().StringVarP(&conversationID, "conversation", "c", "", "conversation id to open")
	return cmd
}

func runChat(ctx context.Context, conversationID domain.ConversationID) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ident, err := a.requireIdentity(ctx)
	if err != nil {
		return err
	}

	sess := session.New(a.client, a.catalog, a.lang, ident.UserID)
	recognizer := voice.NewRecognizer(voice.UnavailableSource{})

	var player voice.Player
	if a.cfg.TTSCommand != "" {
		player = voice.CommandPlayer(a.cfg.TTSCommand)
	}
	synth := voice.NewSynthesizer(player)

	model := tui.New(tui.Deps{
		Session:             sess,
		Composer:            composer.New(recognizer),
		Recognizer:          recognizer,
		Synth:               synth,
		Dashboard:           dashboard.NewService(a.client, a.catalog, a.lang),
		Identity:            ident,
		Translator:          a.catalog,
		Lang:                a.lang,
		Theme:               a.theme,
		InitialConversation: conversationID,
	})

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ident, err := a.idmgr.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s (%s)\n", ident.Name, ident.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newSignupCmd() *cobra.Command {
	var in domain.NewProfile
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ident, err := a.idmgr.Signup(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Printf("Profile created: %s (%s)\n", ident.Name, ident.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "full name (required)")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "password")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number (required)")
	cmd.Flags().StringVar(&in.State, "state", "", "state")
	cmd.Flags().StringVar(&in.District, "district", "", "district")
	cmd.Flags().StringVar(&in.Crop, "crop", "", "primary crop")
	cmd.Flags().StringVar(&in.Language, "language", "", "preferred language")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear local state",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.idmgr.Logout()
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show weather, market, activity, and alert feeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ident, err := a.requireIdentity(cmd.Context())
			if err != nil {
				return err
			}

			data := dashboard.NewService(a.client, a.catalog, a.lang).Load(cmd.Context(), ident.UserID)
			printDashboard(data)
			return nil
		},
	}
}

func printDashboard(data *dashboard.Data) {
	if f := data.Forecast; f != nil {
		fmt.Printf("Weather — %s: %.0f°C, %s, humidity %.0f%%, wind %.1f m/s\n",
			f.District, f.Current.Temp, f.Current.Condition(), f.Current.Humidity, f.Current.WindSpeed)
		for _, d := range f.Daily {
			fmt.Printf("  %s  %.0f–%.0f°C  rain %.0f%%  %s\n",
				d.Date, d.TempMin, d.TempMax, d.Pop*100, d.Condition())
		}
	}
	if m := data.Market; m != nil {
		fmt.Printf("Market — %s (%s)\n", m.Crop, m.District)
		for _, p := range m.NearbyPrices {
			marker := " "
			if p.IsUserDistrict {
				marker = "*"
			}
			fmt.Printf("  %s %-20s %8.2f  %s\n", marker, p.District, p.Price, p.Trend)
		}
		if n := len(m.PriceHistory); n > 0 {
			fmt.Printf("  30-day range: %.2f to %.2f\n",
				m.PriceHistory[0].Price, m.PriceHistory[n-1].Price)
		}
	}
	if len(data.Activities) > 0 {
		fmt.Println("This month's activities:")
		for _, act := range data.Activities {
			fmt.Printf("  • %s\n", act)
		}
	}
	for _, al := range data.Alerts {
		fmt.Printf("[%s] %s — %s\n", al.Severity, al.Title, al.Message)
	}
}

func newCallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call",
		Short: "Request a voice call from the assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ident, err := a.requireIdentity(cmd.Context())
			if err != nil {
				return err
			}

			msg, err := dashboard.NewService(a.client, a.catalog, a.lang).InitiateCall(cmd.Context(), ident.UserID)
			if err != nil {
				return err
			}
			fmt.Println(msg)
			return nil
		},
	}
}
