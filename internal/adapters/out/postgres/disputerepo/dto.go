// Package disputerepo provides data transfer objects and mapping functions for
// dispute persistence.
package disputerepo

import (
	"time"

	"marketplace/internal/core/domain/model/dispute"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DisputeDTO represents the database structure for persisting dispute aggregates.
type DisputeDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EscrowID       uuid.UUID `gorm:"type:uuid;index"`
	FilerID        uuid.UUID `gorm:"type:uuid"`
	Description    string    `gorm:"type:text"`
	Status         int       `gorm:"index"`
	OpenedAt       time.Time `gorm:"autoCreateTime:false"`
	ResolvedAt     *time.Time
	ResolutionText *string `gorm:"type:text"`
}

// TableName specifies the database table name for dispute entities.
func (DisputeDTO) TableName() string {
	return "disputes"
}

// fromDomain converts a dispute domain aggregate to its database representation.
func fromDomain(aggregate *dispute.Dispute) DisputeDTO {
	return DisputeDTO{
		ID:             aggregate.ID().Bytes(),
		EscrowID:       aggregate.EscrowID().Bytes(),
		FilerID:        aggregate.FilerID().Bytes(),
		Description:    aggregate.Description(),
		Status:         int(aggregate.Status()),
		OpenedAt:       aggregate.OpenedAt(),
		ResolvedAt:     aggregate.ResolvedAt(),
		ResolutionText: aggregate.ResolutionText(),
	}
}

// toDomain converts a database DTO to a dispute domain aggregate.
func toDomain(dto DisputeDTO) (*dispute.Dispute, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	escrowID, err := kernel.UUIDFromBytes(dto.EscrowID[:])
	if err != nil {
		return nil, err
	}

	filerID, err := kernel.UUIDFromBytes(dto.FilerID[:])
	if err != nil {
		return nil, err
	}

	return dispute.RestoreDispute(
		id,
		escrowID,
		filerID,
		dto.Description,
		dispute.Status(dto.Status),
		dto.OpenedAt,
		dto.ResolvedAt,
		dto.ResolutionText,
	)
}
