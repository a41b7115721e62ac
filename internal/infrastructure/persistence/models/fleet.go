package models

import (
	"time"

	"github.com/cartrade/backend/internal/domain/fleet"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VehicleModel is the persistence model for the Vehicle aggregate root.
type VehicleModel struct {
	AggregateModel
	VIN                string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	Make               string              `gorm:"type:varchar(100);not null;index"`
	Model              string              `gorm:"type:varchar(100);not null"`
	Year               int                 `gorm:"not null"`
	Color              string              `gorm:"type:varchar(50)"`
	EngineType         string              `gorm:"type:varchar(100)"`
	Specifications     string              `gorm:"type:text"`
	PurchaseID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status             fleet.VehicleStatus `gorm:"type:varchar(20);not null;default:'in_transit';index"`
	ReservedBy         *uuid.UUID          `gorm:"type:uuid"`
	ReservationDate    *time.Time
	ReservationExpires *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (VehicleModel) TableName() string {
	return "vehicles"
}

// ToDomain converts the persistence model to a domain Vehicle entity.
func (m *VehicleModel) ToDomain() *fleet.Vehicle {
	return &fleet.Vehicle{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		VIN:                m.VIN,
		Make:               m.Make,
		Model:              m.Model,
		Year:               m.Year,
		Color:              m.Color,
		EngineType:         m.EngineType,
		Specifications:     m.Specifications,
		PurchaseID:         m.PurchaseID,
		Status:             m.Status,
		ReservedBy:         m.ReservedBy,
		ReservationDate:    m.ReservationDate,
		ReservationExpires: m.ReservationExpires,
	}
}

// VehicleModelFromDomain creates a persistence model from a domain Vehicle entity.
func VehicleModelFromDomain(v *fleet.Vehicle) *VehicleModel {
	m := &VehicleModel{
		VIN:                v.VIN,
		Make:               v.Make,
		Model:              v.Model,
		Year:               v.Year,
		Color:              v.Color,
		EngineType:         v.EngineType,
		Specifications:     v.Specifications,
		PurchaseID:         v.PurchaseID,
		Status:             v.Status,
		ReservedBy:         v.ReservedBy,
		ReservationDate:    v.ReservationDate,
		ReservationExpires: v.ReservationExpires,
	}
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	return m
}
