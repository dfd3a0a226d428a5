package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/M4ss1ck/whatsapp-simulator/internal/adapter/renderer"
	"github.com/M4ss1ck/whatsapp-simulator/internal/adapter/store"
	"github.com/M4ss1ck/whatsapp-simulator/internal/app"
	"github.com/M4ss1ck/whatsapp-simulator/internal/domain"
	"github.com/M4ss1ck/whatsapp-simulator/internal/logger"
)

var (
	renderFormat string
	renderOutput string
	renderWidth  int
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   app.ApplicationName,
	Short: "Compose and render fake chat conversation screens",
	Long: `wasim assembles a synthetic chat transcript (participants, messages,
phone chrome) and renders it as a mock of a messaging-app conversation
screen. State persists locally between invocations; edit it with the
participant, send, settings and status commands, then render it with the
root command or export it as a file.`,
	RunE: runRoot,
}

func Execute() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		initConfig()
		logger.Init(logLevel)
	})

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.Flags().StringVarP(&renderFormat, "format", "f", "screen", `Output format: "screen", "text" or "markdown"`)
	rootCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().IntVar(&renderWidth, "width", 0, "Screen width in columns")
}

func configDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Clean(filepath.Join(configHome, app.ApplicationName))
}

func dataDir() string {
	if dir := viper.GetString("data_dir"); dir != "" {
		return dir
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Clean(filepath.Join(dataHome, app.ApplicationName, "db"))
}

func initConfig() {
	dir := configDir()

	if _, err := os.Stat(dir); os.IsNotExist(err) { //nolint:gosec // path is constructed from XDG_CONFIG_HOME or user home dir
		err = os.MkdirAll(dir, 0750) //nolint:gosec // see above
		cobra.CheckErr(err)
	}

	viper.AddConfigPath(dir)
	viper.SetConfigType("json")
	viper.SetConfigName("config")

	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))
	viper.AutomaticEnv()

	// Silently ignore missing config file
	_ = viper.ReadInConfig()

	// Bridge config value to environment variable for OpenAI SDK
	if apiKey := viper.GetString("openai_api_key"); apiKey != "" {
		if os.Getenv("OPENAI_API_KEY") == "" {
			_ = os.Setenv("OPENAI_API_KEY", apiKey)
		}
	}
}

// openService loads the persisted state. The returned close function must
// run after the command finishes so the store is released.
func openService() (*app.Service, func(), error) {
	dir := dataDir()
	if err := os.MkdirAll(filepath.Dir(dir), 0750); err != nil { //nolint:gosec // path from XDG_DATA_HOME or user home dir
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}

	st, err := store.Open(dir)
	if err != nil {
		return nil, nil, err
	}

	svc, err := app.NewService(st)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return svc, func() { _ = st.Close() }, nil
}

func pickRenderer(format string) (domain.Renderer, error) {
	switch format {
	case "screen", "ansi":
		return &renderer.ScreenRenderer{Width: renderWidth}, nil
	case "text", "txt":
		return &renderer.TextRenderer{}, nil
	case "markdown", "md":
		return &renderer.TextRenderer{Markdown: true}, nil
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}
}

func runRoot(cmd *cobra.Command, _ []string) error {
	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()

	r, err := pickRenderer(renderFormat)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if renderOutput != "" {
		f, err := os.Create(renderOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return r.Render(w, svc.Screen(time.Now()))
}
