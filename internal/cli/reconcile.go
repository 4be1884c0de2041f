package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/ports"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

// Alvos da reconciliação.
const (
	TargetShipments = "fretes"
	TargetFarms     = "fazendas"
)

// ReconcileReport resultado de uma reconciliação completa.
type ReconcileReport struct {
	Target     string    `json:"alvo" yaml:"alvo"`
	Rows       int64     `json:"registros" yaml:"registros"`
	StartedAt  time.Time `json:"inicio" yaml:"inicio"`
	DurationMS int64     `json:"duracao_ms" yaml:"duracao_ms"`
}

// NewReconcileCommand recalcula custos/resultado de todos os fretes ou os totais de todas as fazendas.
func NewReconcileCommand(rootOpts *RootOptions, deps Deps) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "reconcile <fretes|fazendas>",
		Short:     "Recalcula os totais derivados a partir dos dados de origem",
		Long:      "Recalcula em uma única transação custos e resultado de cada frete (fretes) ou toneladas, sacas, faturamento e último frete de cada fazenda (fazendas).",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{TargetShipments, TargetFarms},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(output) {
				return fmt.Errorf("formato %q inválido: use um de %v", output, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			st, err := deps.OpenStorage(ctx, rootOpts.Config)
			if err != nil {
				return err
			}
			defer st.Close()

			report, err := Reconcile(ctx, st.TxRunner, args[0])
			if err != nil {
				return err
			}
			rootOpts.Log.Info().
				Str("alvo", report.Target).
				Int64("registros", report.Rows).
				Int64("duracao_ms", report.DurationMS).
				Msg("reconciliação concluída")
			return WriteReport(cmd.OutOrStdout(), output, report)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "formato da saída (text|json|yaml)")

	return cmd
}

// Reconcile executa o recálculo completo do alvo dentro de uma transação.
func Reconcile(ctx context.Context, runner ports.TxRunner, target string) (*ReconcileReport, error) {
	var recompute func(ctx context.Context, tx repository.TxRepositories) (int64, error)
	switch target {
	case TargetShipments:
		recompute = func(ctx context.Context, tx repository.TxRepositories) (int64, error) {
			return tx.Totals.RecomputeAllShipments(ctx)
		}
	case TargetFarms:
		recompute = func(ctx context.Context, tx repository.TxRepositories) (int64, error) {
			return tx.Totals.RecomputeAllFarms(ctx)
		}
	default:
		return nil, fmt.Errorf("alvo %q inválido: use %s ou %s", target, TargetShipments, TargetFarms)
	}

	report := &ReconcileReport{Target: target, StartedAt: time.Now()}
	err := runner.Run(ctx, func(tx repository.TxRepositories) error {
		n, err := recompute(ctx, tx)
		report.Rows = n
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reconciliar %s: %w", target, err)
	}
	report.DurationMS = time.Since(report.StartedAt).Milliseconds()
	return report, nil
}
