package services

import (
	"errors"
	"strings"
	"time"

	"chainwork_backend/internal/config"
	"chainwork_backend/internal/logger"
	"chainwork_backend/internal/models"
	"chainwork_backend/internal/repositories"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// PaymentService keeps a ledger of client-asserted blockchain transactions.
// Transaction hashes are checked for EVM format only; no node RPC is called,
// the hash is trusted as proof of payment.
type PaymentService interface {
	Record(userID string, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error)
	Get(userID, paymentID string) (*dto.PaymentResponse, error)
	List(userID string, page, limit int) ([]dto.PaymentResponse, repositories.Pagination, error)
	Wallet() dto.WalletInfo
}

type PaymentServiceImpl struct {
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
	jobService  JobService
	cfg         *config.Config
}

func NewPaymentService(paymentRepo repositories.PaymentRepository, userRepo repositories.UserRepository, jobService JobService, cfg *config.Config) PaymentService {
	if cfg.Payment.WalletAddress != "" && !common.IsHexAddress(cfg.Payment.WalletAddress) {
		logger.Warn("configured platform wallet address is not a valid EVM address",
			"address", cfg.Payment.WalletAddress)
	}
	return &PaymentServiceImpl{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		jobService:  jobService,
		cfg:         cfg,
	}
}

// Record writes one ledger entry. The unique index on transaction_hash is
// the only duplicate defense: no pre-read, the conflicting insert loses.
// A job_posting payment with a job reference publishes that job.
func (s *PaymentServiceImpl) Record(userID string, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	blockchain := strings.ToLower(req.Blockchain)
	if !s.supportedChain(blockchain) {
		return nil, apperrors.ErrUnsupportedBlockchain
	}
	if !isEVMTxHash(req.TransactionHash) {
		return nil, apperrors.ErrInvalidTransactionHash
	}

	payment := &models.Payment{
		UserID:          userID,
		TransactionHash: strings.ToLower(req.TransactionHash),
		Blockchain:      blockchain,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Purpose:         req.Purpose,
		JobID:           req.JobID,
		Status:          models.PaymentStatusConfirmed,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		if errors.Is(err, repositories.ErrDuplicateTransactionHash) {
			return nil, apperrors.ErrDuplicateTransaction
		}
		return nil, apperrors.InternalError(err)
	}

	switch {
	case payment.Purpose == models.PaymentPurposeJobPosting && payment.JobID != nil:
		if err := s.jobService.Publish(*payment.JobID); err != nil {
			// The ledger entry stands; publishing can be retried by support.
			logger.WithError(err).Error("job publish after payment failed",
				"payment_id", payment.ID, "job_id", *payment.JobID)
		}
	case payment.Purpose == models.PaymentPurposePremium:
		if err := s.grantPremium(userID); err != nil {
			logger.WithError(err).Error("premium grant after payment failed",
				"payment_id", payment.ID, "user_id", userID)
		}
	}

	return dto.NewPaymentResponse(payment), nil
}

// premiumTerm is granted per premium payment; back-to-back payments stack.
const premiumTerm = 30 * 24 * time.Hour

func (s *PaymentServiceImpl) grantPremium(userID string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	from := timeNow()
	if user.PremiumUntil != nil && user.PremiumUntil.After(from) {
		from = *user.PremiumUntil
	}
	until := from.Add(premiumTerm)
	return s.userRepo.UpdateFields(userID, map[string]interface{}{
		"is_premium":    true,
		"premium_until": until,
	})
}

func (s *PaymentServiceImpl) Get(userID, paymentID string) (*dto.PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(paymentID)
	if errors.Is(err, repositories.ErrPaymentNotFound) {
		return nil, apperrors.ErrNotFound(err)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if payment.UserID != userID {
		return nil, apperrors.ErrNotFoundOrUnauthorized(repositories.ErrPaymentNotFound)
	}
	return dto.NewPaymentResponse(payment), nil
}

func (s *PaymentServiceImpl) List(userID string, page, limit int) ([]dto.PaymentResponse, repositories.Pagination, error) {
	payments, total, err := s.paymentRepo.FindByUser(userID, page, limit)
	if err != nil {
		return nil, repositories.Pagination{}, apperrors.InternalError(err)
	}

	responses := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, *dto.NewPaymentResponse(&payments[i]))
	}
	return responses, repositories.NewPagination(page, limit, total), nil
}

func (s *PaymentServiceImpl) Wallet() dto.WalletInfo {
	return dto.WalletInfo{
		WalletAddress: s.cfg.Payment.WalletAddress,
		Blockchains:   s.cfg.Payment.Blockchains,
		JobPostPrice:  s.cfg.Payment.JobPostPrice,
		Currency:      s.cfg.Payment.Currency,
	}
}

func (s *PaymentServiceImpl) supportedChain(blockchain string) bool {
	for _, chain := range s.cfg.Payment.Blockchains {
		if strings.EqualFold(chain, blockchain) {
			return true
		}
	}
	return false
}

// isEVMTxHash reports whether the string is a 0x-prefixed 32-byte hex hash.
func isEVMTxHash(hash string) bool {
	raw, err := hexutil.Decode(hash)
	if err != nil {
		return false
	}
	return len(raw) == common.HashLength
}
