package cli

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/auth"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
)

// NewCreateUserCommand cadastra um usuário do painel. Usado para criar o primeiro admin.
func NewCreateUserCommand(rootOpts *RootOptions, deps Deps) *cobra.Command {
	var in dto.RegisterRequest

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Cadastra um usuário do painel",
		Args:  cobra.NoArgs,
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

			u, err := CreateUser(ctx, st.Users, in)
			if err != nil {
				return err
			}
			rootOpts.Log.Info().Int64("usuario_id", u.ID).Str("role", u.Role).Msg("usuário cadastrado")
			fmt.Fprintf(cmd.OutOrStdout(), "usuário %d cadastrado: %s (%s)\n", u.ID, u.Email, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "nome", "", "nome do usuário")
	cmd.Flags().StringVar(&in.Email, "email", "", "email de acesso")
	cmd.Flags().StringVar(&in.Password, "senha", "", "senha (mínimo 8 caracteres)")
	cmd.Flags().StringVar(&in.Role, "role", entity.RoleAdmin, "admin | operador")
	_ = cmd.MarkFlagRequired("nome")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("senha")

	return cmd
}

// CreateUser valida as regras do cadastro e grava o usuário com senha bcrypt.
func CreateUser(ctx context.Context, users repository.UserRepository, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := validator.New().Struct(in); err != nil {
		return nil, fmt.Errorf("dados do usuário inválidos: %w", err)
	}
	return auth.NewAuthUseCase(users, auth.JWTConfig{}).RegisterUser(ctx, in)
}
