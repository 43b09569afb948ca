package debt_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fletes/internal/debt"
	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

func TestService_CreateDebt(t *testing.T) {
	type args struct {
		params debt.CreateParams
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(m *debt.MockRepository)
		wantErr    bool
		wantFields []string
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: debt.CreateParams{
					PersonaName: "Carlos",
					Description: "Préstamo cauchos",
					TotalDivisa: 50000,
				},
			},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().
					CreateDebt(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, d *debt.Debt) error {
						assert.Equal(t, money.USD, d.Currency)
						d.ID = uuid.New()
						d.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "MissingCreditorAndTotal",
			args: args{
				params: debt.CreateParams{},
			},
			wantErr:    true,
			wantFields: []string{"persona_name", "total_divisa"},
		},
		{
			name: "VESOriginRejected",
			args: args{
				params: debt.CreateParams{PersonaName: "Ana", TotalDivisa: 100, Currency: money.VES},
			},
			wantErr:    true,
			wantFields: []string{validate.FieldCurrency},
		},
		{
			name: "NonPositiveRate",
			args: args{
				params: debt.CreateParams{PersonaName: "Ana", TotalDivisa: 100, Rate: new(decimal.Zero)},
			},
			wantErr:    true,
			wantFields: []string{validate.FieldRate},
		},
		{
			name: "RepoError",
			args: args{
				params: debt.CreateParams{PersonaName: "Ana", TotalDivisa: 100},
			},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().
					CreateDebt(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := debt.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := debt.NewService(repo)
			got, err := svc.CreateDebt(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				var verrs validate.Errors
				if len(tt.wantFields) > 0 {
					require.True(t, errors.As(err, &verrs))

					for _, f := range tt.wantFields {
						assert.True(t, verrs.Has(f), "missing error for %s: %v", f, verrs)
					}
				}

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_RecordPayment(t *testing.T) {
	debtID := uuid.New()
	existing := &debt.Debt{ID: debtID, PersonaName: "Carlos", Currency: money.USD, TotalDivisa: 50000}
	paidOn := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	type args struct {
		params debt.PaymentParams
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(m *debt.MockRepository)
		wantErr    error
		wantFields []string
		check      func(t *testing.T, p *debt.Payment)
	}

	tests := []testCase{
		{
			name: "Divisa",
			args: args{
				params: debt.PaymentParams{
					DebtID:      debtID,
					PaymentDate: paidOn,
					Type:        validate.PaymentDivisa,
					Divisa:      new(int64(20000)),
				},
			},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), debtID).Return(existing, nil)
				m.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, p *debt.Payment) {
				assert.Equal(t, debtID, p.DebtID)
				assert.Equal(t, money.USD, p.Currency)
				assert.Equal(t, int64(20000), *p.Divisa)
				assert.Nil(t, p.Bolivares)
			},
		},
		{
			name: "Bolivares",
			args: args{
				params: debt.PaymentParams{
					DebtID:      debtID,
					PaymentDate: paidOn,
					Type:        validate.PaymentBolivares,
					Divisa:      new(int64(20000)),
					Bolivares:   new(int64(600000)),
					Rate:        new(decimal.NewFromInt(30)),
					RateType:    new(money.RateParallel),
				},
			},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), debtID).Return(existing, nil)
				m.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, p *debt.Payment) {
				assert.Nil(t, p.Divisa)
				assert.Equal(t, int64(600000), *p.Bolivares)
				assert.Equal(t, money.RateParallel, *p.RateType)
			},
		},
		{
			name: "BolivaresWithoutRate",
			args: args{
				params: debt.PaymentParams{
					DebtID:    debtID,
					Type:      validate.PaymentBolivares,
					Bolivares: new(int64(100000)),
				},
			},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), debtID).Return(existing, nil)
			},
			wantFields: []string{validate.FieldRate, validate.FieldRateType, "payment_date"},
		},
		{
			name: "DebtNotFound",
			args: args{
				params: debt.PaymentParams{DebtID: debtID},
			},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), debtID).Return(nil, debt.ErrNotFound)
			},
			wantErr: debt.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := debt.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := debt.NewService(repo)
			got, err := svc.RecordPayment(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			if len(tt.wantFields) > 0 {
				var verrs validate.Errors
				require.True(t, errors.As(err, &verrs))

				for _, f := range tt.wantFields {
					assert.True(t, verrs.Has(f), "missing error for %s: %v", f, verrs)
				}

				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := &debt.Debt{ID: uuid.New(), TotalDivisa: 50000}
	second := &debt.Debt{ID: uuid.New(), TotalDivisa: 10000}

	repo := debt.NewMockRepository(ctrl)
	repo.EXPECT().ListDebts(gomock.Any()).Return([]*debt.Debt{first, second}, nil).Times(2)
	repo.EXPECT().ListPayments(gomock.Any(), debt.PaymentFilter{}).Return([]*debt.Payment{
		divisaPayment(first.ID, 20000),
		bolivaresPayment(first.ID, 600000, "30"),
	}, nil).Times(2)

	svc := debt.NewService(repo)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(10000), got[0].Remaining)
	assert.Equal(t, debt.StatusPartial, got[0].Status)
	assert.Equal(t, int64(10000), got[1].Remaining)
	assert.Equal(t, debt.StatusPending, got[1].Status)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(60000), summary.TotalDebt)
	assert.Equal(t, int64(40000), summary.TotalPaid)
	assert.Equal(t, int64(67), summary.PercentPaid)
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := &debt.Debt{ID: uuid.New(), TotalDivisa: 50000}

	repo := debt.NewMockRepository(ctrl)
	repo.EXPECT().GetDebt(gomock.Any(), d.ID).Return(d, nil)
	repo.EXPECT().
		ListPayments(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f debt.PaymentFilter) ([]*debt.Payment, error) {
			require.NotNil(t, f.DebtID)
			assert.Equal(t, d.ID, *f.DebtID)
			return []*debt.Payment{divisaPayment(d.ID, 50000)}, nil
		})

	got, err := debt.NewService(repo).Get(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Remaining)
	assert.Equal(t, debt.StatusPaid, got.Status)
}

func TestService_UpdateDebt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := &debt.Debt{ID: uuid.New(), PersonaName: "Carlos", TotalDivisa: 50000}

	repo := debt.NewMockRepository(ctrl)
	repo.EXPECT().GetDebt(gomock.Any(), d.ID).Return(d, nil)
	repo.EXPECT().UpdateDebt(gomock.Any(), gomock.Any()).Return(nil)

	got, err := debt.NewService(repo).UpdateDebt(context.Background(), d.ID, debt.UpdateParams{
		Description: new("Cauchos y rines"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Carlos", got.PersonaName)
	assert.Equal(t, "Cauchos y rines", got.Description)
	assert.Equal(t, int64(50000), got.TotalDivisa)
}
