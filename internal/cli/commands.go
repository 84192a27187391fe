package cli

import (
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"atolonline/internal/app"
	"atolonline/internal/domain/models"
	"atolonline/internal/service/fiscal"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Получить токен авторизации",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, true, func(a *app.App) error {
				token, err := a.Service.Token(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			})
		},
	}
}

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var operation, externalID string

	cmd := &cobra.Command{
		Use:   "register <receipt.yaml>",
		Short: "Отправить чек на регистрацию",
		Long: `Отправляет чек из YAML- или JSON-файла. Формат файла:

  operation: sell          # sell, sell_refund, buy, buy_refund, ...
  external_id: order-42    # пустой — будет сгенерирован UUID
  sno: usn_income
  email: buyer@example.com
  items:
    - {name: Кофе, price: "150.00", quantity: "2", tax: vat18}
  payments:
    - {type: 1, sum: "300.00"}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := fiscal.LoadDocument(args[0])
			if err != nil {
				return err
			}
			if operation != "" {
				doc.Operation = operation
			}
			if externalID != "" {
				doc.ExternalID = externalID
			}

			return withApp(cmd, opts, true, func(a *app.App) error {
				entry, err := a.Service.Register(cmd.Context(), doc)
				if entry != nil {
					if perr := printJSON(cmd.OutOrStdout(), entry); perr != nil {
						return perr
					}
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&operation, "operation", "", "тип операции (перекрывает файл)")
	cmd.Flags().StringVar(&externalID, "external-id", "", "external_id документа (перекрывает файл)")
	return cmd
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var pending bool

	cmd := &cobra.Command{
		Use:   "report [external_id|uuid]",
		Short: "Запросить результат обработки документа",
		Args: func(cmd *cobra.Command, args []string) error {
			if pending {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, true, func(a *app.App) error {
				if pending {
					entries, err := a.Service.RefreshPending(cmd.Context())
					if perr := printEntries(cmd, entries); perr != nil {
						return perr
					}
					return err
				}

				entry, err := a.Service.Refresh(cmd.Context(), args[0])
				if entry != nil {
					if perr := printJSON(cmd.OutOrStdout(), entry); perr != nil {
						return perr
					}
				}
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&pending, "pending", false, "обновить все незавершенные документы журнала")
	return cmd
}

func newJournalCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Показать журнал отправленных документов",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, false, func(a *app.App) error {
				entries, err := a.Service.Journal()
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), entries)
				}
				return printEntries(cmd, entries)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "вывод в JSON")
	cmd.AddCommand(newJournalRmCmd(opts))
	return cmd
}

func newJournalRmCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <external_id>",
		Short: "Удалить запись из журнала",
		Long: `Удаляет запись из локального журнала. Документ в АТОЛ Онлайн не затрагивается;
после удаления тот же external_id можно отправить повторно.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, false, func(a *app.App) error {
				if err := a.Service.Forget(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Запись %s удалена\n", args[0])
				return nil
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Показать версию",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "atolctl %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
		},
	}
}

func printEntries(cmd *cobra.Command, entries []*models.JournalEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EXTERNAL_ID\tOPERATION\tUUID\tSTATUS\tTOTAL\tFD\tERROR")
	for _, e := range entries {
		fd := ""
		if e.Fiscal != nil {
			fd = fmt.Sprint(e.Fiscal.FiscalDocumentNumber)
		}
		errText := ""
		if e.ErrorKind != "" {
			errText = fmt.Sprintf("%d %s %s", e.ErrorCode, e.ErrorKind, e.ErrorText)
		} else if e.ErrorText != "" {
			errText = e.ErrorText
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ExternalID, e.Operation, e.UUID, e.Status, e.Total, fd, errText)
	}
	return w.Flush()
}
