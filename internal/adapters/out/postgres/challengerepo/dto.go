// Package challengerepo provides data transfer objects and mapping functions
// for verification challenge persistence.
//
// Two partial unique indexes back the domain rules: at most one unused
// challenge per order, and at most one unused copy of any code value across
// the marketplace. Inserting is therefore the collision check itself; there
// is no separate lookup a racing issuer could slip past.
package challengerepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/verification"

	"github.com/google/uuid"
)

// ChallengeDTO represents the database structure for persisting verification
// challenges. The row carries a surrogate primary key because the domain
// identifies a challenge by its order and used flag, not by a standalone ID.
type ChallengeDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_challenges_unused_order,where:used = false"`
	BuyerID   uuid.UUID `gorm:"type:uuid"`
	SellerID  uuid.UUID `gorm:"type:uuid"`
	Code      string    `gorm:"type:varchar(6);uniqueIndex:idx_challenges_unused_code,where:used = false"`
	Used      bool
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

// TableName specifies the database table name for challenge entities.
func (ChallengeDTO) TableName() string {
	return "verification_challenges"
}

// fromDomain converts a challenge domain entity to its database representation.
// A fresh surrogate key is minted on every call; Add is the only writer that
// persists it.
func fromDomain(c *verification.Challenge) ChallengeDTO {
	return ChallengeDTO{
		ID:        uuid.New(),
		OrderID:   c.OrderID().Bytes(),
		BuyerID:   c.BuyerID().Bytes(),
		SellerID:  c.SellerID().Bytes(),
		Code:      c.Code(),
		Used:      c.Used(),
		CreatedAt: c.CreatedAt(),
	}
}

// toDomain converts a database DTO to a challenge domain entity.
func toDomain(dto ChallengeDTO) (*verification.Challenge, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	return verification.RestoreChallenge(
		orderID,
		buyerID,
		sellerID,
		dto.Code,
		dto.Used,
		dto.CreatedAt,
	)
}
