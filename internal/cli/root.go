// Package cli содержит команды atolctl.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"atolonline/internal/app"
	"atolonline/internal/config"
)

// Version и BuildDate задаются при сборке через -ldflags
var (
	Version   = "dev"
	BuildDate = "unknown"
)

type rootOptions struct {
	app.Options
	showMetrics bool
}

// NewRootCmd создает корневую команду со всеми подкомандами.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "atolctl",
		Short: "Регистрация чеков в АТОЛ Онлайн",
		Long: `atolctl отправляет чеки в облачную кассу АТОЛ Онлайн и отслеживает их статус.

Примеры:
  atolctl token                          # проверить логин и пароль
  atolctl register receipt.yaml          # отправить чек
  atolctl report ext-1                   # запросить результат обработки
  atolctl report --pending               # обновить все незавершенные документы
  atolctl journal                        # показать журнал`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", config.DefaultPath, "путь к файлу конфигурации")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "подробный лог")
	root.PersistentFlags().BoolVar(&opts.showMetrics, "metrics", false, "вывести метрики запросов после выполнения")

	root.AddCommand(
		newTokenCmd(opts),
		newRegisterCmd(opts),
		newReportCmd(opts),
		newJournalCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute запускает atolctl с аргументами командной строки.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// withApp создает приложение на время выполнения команды.
// Команды, обращающиеся к API, передают needAPI: без логина, пароля и группы они не запускаются.
func withApp(cmd *cobra.Command, opts *rootOptions, needAPI bool, fn func(a *app.App) error) error {
	a, err := app.NewApp(opts.Options)
	if err != nil {
		return err
	}
	defer a.Close()

	if needAPI {
		if err := a.Config.ValidateAPI(); err != nil {
			return err
		}
	}

	runErr := fn(a)

	if opts.showMetrics {
		if err := writeMetrics(cmd.ErrOrStderr(), a); err != nil {
			a.Logger.Warn("Не удалось вывести метрики: %v", err)
		}
	}
	return runErr
}

func writeMetrics(w io.Writer, a *app.App) error {
	families, err := a.Registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
