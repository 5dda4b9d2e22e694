package models

const (
	PaymentPurposeJobPosting = "job_posting"
	PaymentPurposePremium    = "premium"
)

// Payment is an append-only ledger entry for a client-asserted blockchain
// transaction. The unique index on TransactionHash prevents recording the
// same hash twice; no on-chain confirmation is performed.
type Payment struct {
	BaseModel
	UserID          string        `gorm:"not null;index"`
	TransactionHash string        `gorm:"uniqueIndex;not null"`
	Blockchain      string        `gorm:"type:varchar(30);not null"` // ethereum, polygon, ...
	Amount          float64       `gorm:"not null"`
	Currency        string        `gorm:"type:varchar(10);not null"`
	Purpose         string        `gorm:"type:varchar(30);not null"` // job_posting, premium
	JobID           *string       `gorm:"index"`
	Status          PaymentStatus `gorm:"type:varchar(20);default:'confirmed'"`
}
