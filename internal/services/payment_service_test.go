package services

import (
	"strings"
	"testing"
	"time"

	"chainwork_backend/internal/config"
	"chainwork_backend/internal/models"
	"chainwork_backend/internal/repositories"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentRepo struct {
	rows []*models.Payment
}

func (f *fakePaymentRepo) Create(p *models.Payment) error {
	for _, row := range f.rows {
		if row.TransactionHash == p.TransactionHash {
			return repositories.ErrDuplicateTransactionHash
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	f.rows = append(f.rows, p)
	return nil
}

func (f *fakePaymentRepo) FindByID(id string) (*models.Payment, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (f *fakePaymentRepo) FindByTransactionHash(hash string) (*models.Payment, error) {
	for _, row := range f.rows {
		if row.TransactionHash == hash {
			return row, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (f *fakePaymentRepo) FindByUser(userID string, page, limit int) ([]models.Payment, int64, error) {
	var out []models.Payment
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, int64(len(out)), nil
}

// premiumUserRepo records UpdateFields writes so premium grants can be
// asserted; the embedded nil interface covers the rest.
type premiumUserRepo struct {
	repositories.UserRepository
	user    *models.User
	updates []map[string]interface{}
}

func (s *premiumUserRepo) FindByID(id string) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, repositories.ErrUserNotFound
	}
	return s.user, nil
}

func (s *premiumUserRepo) UpdateFields(userID string, fields map[string]interface{}) error {
	s.updates = append(s.updates, fields)
	return nil
}

// stubJobService records Publish calls; the embedded nil interface covers
// the methods the payment service never touches.
type stubJobService struct {
	JobService
	published  []string
	publishErr error
}

func (s *stubJobService) Publish(jobID string) error {
	s.published = append(s.published, jobID)
	return s.publishErr
}

func paymentTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Payment.WalletAddress = "0x52908400098527886E0F7030069857D2E4169EE7"
	cfg.Payment.Blockchains = []string{"ethereum", "polygon", "bsc"}
	cfg.Payment.JobPostPrice = 10
	cfg.Payment.Currency = "USDT"
	return cfg
}

const validTxHash = "0x4e3a3754410177e6937ef1f84bba68ea139e8d1a2258c5f85db9f1cd715a1bdd"

func TestRecordPayment_DuplicateHashConflict(t *testing.T) {
	repo := &fakePaymentRepo{}
	svc := NewPaymentService(repo, &premiumUserRepo{}, &stubJobService{}, paymentTestConfig())

	req := dto.RecordPaymentRequest{
		TransactionHash: validTxHash,
		Blockchain:      "ethereum",
		Amount:          10,
		Currency:        "USDT",
		Purpose:         "premium",
	}

	first, err := svc.Record(uuid.NewString(), req)
	require.NoError(t, err)
	assert.Equal(t, validTxHash, first.TransactionHash)

	// Same hash from a different user, different casing: still one row.
	req.TransactionHash = strings.ToUpper(validTxHash[2:])
	req.TransactionHash = "0x" + req.TransactionHash
	_, err = svc.Record(uuid.NewString(), req)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
	assert.Len(t, repo.rows, 1)
}

func TestRecordPayment_InvalidHashRejected(t *testing.T) {
	svc := NewPaymentService(&fakePaymentRepo{}, &premiumUserRepo{}, &stubJobService{}, paymentTestConfig())

	for _, hash := range []string{
		"",
		"4e3a3754410177e6937ef1f84bba68ea139e8d1a2258c5f85db9f1cd715a1bdd", // no 0x
		"0x1234",                // too short
		"0x" + strings.Repeat("zz", 32), // not hex
	} {
		_, err := svc.Record(uuid.NewString(), dto.RecordPaymentRequest{
			TransactionHash: hash,
			Blockchain:      "ethereum",
			Amount:          10,
			Currency:        "USDT",
			Purpose:         "premium",
		})
		assert.Error(t, err, "hash %q", hash)
	}
}

func TestRecordPayment_UnsupportedChainRejected(t *testing.T) {
	svc := NewPaymentService(&fakePaymentRepo{}, &premiumUserRepo{}, &stubJobService{}, paymentTestConfig())

	_, err := svc.Record(uuid.NewString(), dto.RecordPaymentRequest{
		TransactionHash: validTxHash,
		Blockchain:      "dogecoin",
		Amount:          10,
		Currency:        "USDT",
		Purpose:         "premium",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestRecordPayment_JobPostingPublishesJob(t *testing.T) {
	jobs := &stubJobService{}
	svc := NewPaymentService(&fakePaymentRepo{}, &premiumUserRepo{}, jobs, paymentTestConfig())

	jobID := uuid.NewString()
	resp, err := svc.Record(uuid.NewString(), dto.RecordPaymentRequest{
		TransactionHash: validTxHash,
		Blockchain:      "polygon",
		Amount:          10,
		Currency:        "USDT",
		Purpose:         "job_posting",
		JobID:           &jobID,
	})

	require.NoError(t, err)
	assert.Equal(t, string(models.PaymentStatusConfirmed), resp.Status)
	assert.Equal(t, []string{jobID}, jobs.published)
}

func TestRecordPayment_PremiumGrantsTerm(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = time.Now })

	userID := uuid.NewString()
	users := &premiumUserRepo{user: &models.User{BaseModel: models.BaseModel{ID: userID}}}
	svc := NewPaymentService(&fakePaymentRepo{}, users, &stubJobService{}, paymentTestConfig())

	_, err := svc.Record(userID, dto.RecordPaymentRequest{
		TransactionHash: validTxHash,
		Blockchain:      "ethereum",
		Amount:          25,
		Currency:        "USDT",
		Purpose:         "premium",
	})
	require.NoError(t, err)

	require.Len(t, users.updates, 1)
	assert.Equal(t, true, users.updates[0]["is_premium"])
	assert.Equal(t, now.Add(30*24*time.Hour), users.updates[0]["premium_until"])
}

func TestRecordPayment_PremiumStacksFromCurrentExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = time.Now })

	userID := uuid.NewString()
	until := now.Add(10 * 24 * time.Hour)
	users := &premiumUserRepo{user: &models.User{
		BaseModel:    models.BaseModel{ID: userID},
		IsPremium:    true,
		PremiumUntil: &until,
	}}
	svc := NewPaymentService(&fakePaymentRepo{}, users, &stubJobService{}, paymentTestConfig())

	_, err := svc.Record(userID, dto.RecordPaymentRequest{
		TransactionHash: validTxHash,
		Blockchain:      "ethereum",
		Amount:          25,
		Currency:        "USDT",
		Purpose:         "premium",
	})
	require.NoError(t, err)

	require.Len(t, users.updates, 1)
	assert.Equal(t, until.Add(30*24*time.Hour), users.updates[0]["premium_until"])
}

func TestListPayments_OwnOnly(t *testing.T) {
	repo := &fakePaymentRepo{}
	svc := NewPaymentService(repo, &premiumUserRepo{}, &stubJobService{}, paymentTestConfig())

	owner := uuid.NewString()
	other := uuid.NewString()
	repo.rows = append(repo.rows,
		&models.Payment{UserID: owner, TransactionHash: "a"},
		&models.Payment{UserID: other, TransactionHash: "b"},
	)

	payments, pagination, err := svc.List(owner, 1, 20)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
	assert.Equal(t, int64(1), pagination.Total)
}

func TestWalletInfo_FromConfig(t *testing.T) {
	cfg := paymentTestConfig()
	svc := NewPaymentService(&fakePaymentRepo{}, &premiumUserRepo{}, &stubJobService{}, cfg)

	info := svc.Wallet()
	assert.Equal(t, cfg.Payment.WalletAddress, info.WalletAddress)
	assert.Equal(t, cfg.Payment.Blockchains, info.Blockchains)
	assert.Equal(t, 10.0, info.JobPostPrice)
	assert.Equal(t, "USDT", info.Currency)
}
