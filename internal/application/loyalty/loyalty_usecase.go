package loyalty

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// CardSequenceKey clave del contador de tarjetas de fidelización.
const CardSequenceKey = "LOYALTY-CARD"

// FormatCardNumber arma el número de tarjeta: LC + 10 dígitos.
func FormatCardNumber(seq int64) string {
	return fmt.Sprintf("LC%010d", seq)
}

// LoyaltyUseCase administra la cuenta de fidelización de los clientes.
// Los puntos por compras se acreditan desde el caso de uso de ventas.
type LoyaltyUseCase struct {
	txRunner  repository.TxRunner
	customers repository.CustomerRepository
	now       func() time.Time
}

// NewLoyaltyUseCase construye el caso de uso.
func NewLoyaltyUseCase(txRunner repository.TxRunner, customers repository.CustomerRepository) *LoyaltyUseCase {
	return &LoyaltyUseCase{txRunner: txRunner, customers: customers, now: time.Now}
}

// EnrollLoyalty inscribe al cliente. La primera vez genera tarjeta, fecha de inicio y
// puntos en cero; volver a inscribirlo conserva tarjeta y puntos.
func (uc *LoyaltyUseCase) EnrollLoyalty(ctx context.Context, customerID string) (*dto.LoyaltyAccountResponse, error) {
	var customer *entity.Customer
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		customer, err = lockCustomer(ctx, repos, customerID)
		if err != nil {
			return err
		}
		return Enroll(ctx, repos, customer, uc.now())
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().
		Str("customer_id", customer.ID).
		Str("card", customer.LoyaltyCardNumber).
		Msg("cliente inscrito en fidelización")
	return toAccountResponse(customer), nil
}

// Enroll aplica la inscripción sobre un cliente ya bloqueado dentro de una transacción.
// Lo reutiliza el alta de clientes con is_loyalty.
func Enroll(ctx context.Context, repos repository.TxRepos, customer *entity.Customer, now time.Time) error {
	if customer.IsLoyalty && customer.LoyaltyCardNumber != "" {
		return nil
	}
	customer.IsLoyalty = true
	if customer.LoyaltyCardNumber == "" {
		seq, err := repos.Sequences.Next(ctx, CardSequenceKey)
		if err != nil {
			return err
		}
		customer.LoyaltyCardNumber = FormatCardNumber(seq)
		customer.LoyaltyPoints = 0
		start := now
		customer.LoyaltyStartDate = &start
	}
	customer.UpdatedAt = now
	return repos.Customers.UpdateLoyalty(ctx, customer)
}

// DisableLoyalty desactiva la fidelización. Tarjeta y puntos se conservan.
func (uc *LoyaltyUseCase) DisableLoyalty(ctx context.Context, customerID string) (*dto.LoyaltyAccountResponse, error) {
	var customer *entity.Customer
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		customer, err = lockCustomer(ctx, repos, customerID)
		if err != nil {
			return err
		}
		if !customer.IsLoyalty {
			return nil
		}
		customer.IsLoyalty = false
		customer.UpdatedAt = uc.now()
		return repos.Customers.UpdateLoyalty(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("customer_id", customer.ID).Msg("fidelización desactivada")
	return toAccountResponse(customer), nil
}

// AddLoyaltyPoints suma puntos manualmente. amount debe ser positivo.
// No exige inscripción: los puntos quedan en la cuenta aunque is_loyalty sea false.
func (uc *LoyaltyUseCase) AddLoyaltyPoints(ctx context.Context, customerID string, amount int) (*dto.LoyaltyAccountResponse, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidPointAmount
	}
	var customer *entity.Customer
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		customer, err = lockCustomer(ctx, repos, customerID)
		if err != nil {
			return err
		}
		customer.LoyaltyPoints += amount
		customer.UpdatedAt = uc.now()
		return repos.Customers.UpdateLoyalty(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().
		Str("customer_id", customer.ID).
		Int("added", amount).
		Int("balance", customer.LoyaltyPoints).
		Msg("puntos de fidelización acreditados")
	return toAccountResponse(customer), nil
}

// GetLoyaltyAccount devuelve el estado de la cuenta.
func (uc *LoyaltyUseCase) GetLoyaltyAccount(ctx context.Context, customerID string) (*dto.LoyaltyAccountResponse, error) {
	c, err := uc.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toAccountResponse(c), nil
}

func lockCustomer(ctx context.Context, repos repository.TxRepos, id string) (*entity.Customer, error) {
	c, err := repos.Customers.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func toAccountResponse(c *entity.Customer) *dto.LoyaltyAccountResponse {
	return &dto.LoyaltyAccountResponse{
		CustomerID: c.ID,
		IsLoyalty:  c.IsLoyalty,
		CardNumber: c.LoyaltyCardNumber,
		Points:     c.LoyaltyPoints,
		StartDate:  c.LoyaltyStartDate,
	}
}
