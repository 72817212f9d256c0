// Command keybind inspects and manipulates engine key binding files from
// the shell: print the effective bindings, resolve a key press, look up the
// shortcuts for an action, or round-trip a bind file.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/riftforge/keybind/internal/config"
	"github.com/riftforge/keybind/internal/input/bindings"
	"github.com/riftforge/keybind/internal/input/key"
)

var (
	flagKeysFile string
	flagConfig   string
	flagDefaults bool
	flagDebug    bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "keybind",
		Short:        "Inspect and manipulate engine key bindings",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&flagKeysFile, "keys", "k", "", "bind file to load (default from config)")
	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "keybind.toml", "settings file")
	root.PersistentFlags().BoolVar(&flagDefaults, "defaults", true, "load the stock default bindings first")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable binding resolution tracing")

	root.AddCommand(printCmd(), saveCmd(), resolveCmd(), hotkeysCmd(), validateCmd(), watchCmd())
	return root
}

// setup builds a binding state from the config file, the defaults, and the
// user bind file, in that order.
func setup() (*bindings.Bindings, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "keybind"})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	mgr := config.NewManager()
	if err := mgr.Load(flagConfig); err != nil {
		return nil, err
	}

	b := bindings.New()
	b.SetLogger(logger)

	mgr.NotifyOnChange(config.SettingChainTimeout, func(_ string, value any) {
		if ms, ok := value.(int); ok {
			b.SetChainTimeout(time.Duration(ms) * time.Millisecond)
		}
	})

	settings := mgr.Settings()
	b.SetChainTimeout(time.Duration(settings.KeyChainTimeout) * time.Millisecond)
	if flagDebug || settings.KeyDebug {
		b.ExecuteCommand("keydebug 1")
	}

	if flagDefaults {
		b.LoadDefaults()
	}

	keysFile := flagKeysFile
	if keysFile == "" {
		keysFile = settings.KeysFile
	}
	if _, err := os.Stat(keysFile); err == nil {
		b.Load(keysFile)
	}
	b.BuildHotkeyMap()

	return b, nil
}

func printCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the effective bindings in bind-file format",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := setup()
			if err != nil {
				return err
			}
			return b.SaveWriter(os.Stdout)
		},
	}
}

func saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <file>",
		Short: "Write the effective bindings to a bind file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := setup()
			if err != nil {
				return err
			}
			if !b.Save(args[0]) {
				return fmt.Errorf("could not save %s", args[0])
			}
			return nil
		},
	}
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <chain>",
		Short: "Resolve a pressed chain (e.g. \"Shift+a\" or \"Alt+ctrl+a,Alt+ctrl+a\")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := setup()
			if err != nil {
				return err
			}
			chain, err := b.Registry().ParseChain(args[0])
			if err != nil {
				return err
			}
			matched := b.LookupChain(chain)
			if len(matched) == 0 {
				fmt.Println("no bindings")
				return nil
			}
			for _, bind := range matched {
				fmt.Printf("%s  (bound with %q, index %d)\n", bind.Action.Line, bind.BoundWith, bind.Index)
			}
			return nil
		},
	}
}

func hotkeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hotkeys <action>",
		Short: "List the shortcuts bound to an action",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := setup()
			if err != nil {
				return err
			}
			action := strings.Join(args, " ")
			keys := b.HotkeysFor(action)
			if len(keys) == 0 {
				fmt.Println("no shortcuts")
				return nil
			}
			for _, k := range keys {
				fmt.Println(k)
			}
			return nil
		},
	}
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload the settings file on change until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "keybind"})

			mgr := config.NewManager()
			if err := mgr.Load(flagConfig); err != nil {
				return err
			}

			b := bindings.New()
			b.SetLogger(logger)

			reload := func() {
				settings := mgr.Settings()
				b.SetChainTimeout(time.Duration(settings.KeyChainTimeout) * time.Millisecond)
				b.UnbindAll()
				if flagDefaults {
					b.LoadDefaults()
				}
				keysFile := flagKeysFile
				if keysFile == "" {
					keysFile = settings.KeysFile
				}
				if _, err := os.Stat(keysFile); err == nil {
					b.Load(keysFile)
				}
				b.BuildHotkeyMap()
				logger.Info("bindings loaded", "count", len(b.AllBindings()))
			}
			reload()

			mgr.NotifyOnChange(config.SettingChainTimeout, func(_ string, value any) {
				if ms, ok := value.(int); ok {
					b.SetChainTimeout(time.Duration(ms) * time.Millisecond)
					logger.Info("chain timeout updated", "ms", ms)
				}
			})
			mgr.NotifyOnChange(config.SettingKeysFile, func(_ string, _ any) { reload() })

			w, err := config.NewWatcher(mgr, flagConfig)
			if err != nil {
				return err
			}
			defer w.Close()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <chain>",
		Short: "Parse a chain and print its canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := key.NewRegistry()
			chain, err := reg.ParseChain(args[0])
			if err != nil {
				return err
			}
			fmt.Println(reg.FormatChain(chain))
			return nil
		},
	}
}
