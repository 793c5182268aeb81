// Package repository persists the persona catalog.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	chatErrors "github.com/mantonx/cinebot/internal/modules/chatbotmodule/errors"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
	"gorm.io/gorm"
)

// PersonaModel is the stored form of a persona. Tag sets are comma-joined;
// Position keeps catalog order, which decides matcher ties.
type PersonaModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	Position    int    `gorm:"not null;index"`
	DisplayName string `gorm:"size:128;not null"`
	ImageRef    string `gorm:"size:255"`
	Contexts    string `gorm:"type:text;not null"`
	Emotions    string `gorm:"type:text;not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (PersonaModel) TableName() string {
	return "chatbot_personas"
}

// ToRecord converts the row to a persona record.
func (m PersonaModel) ToRecord() types.PersonaRecord {
	r := types.PersonaRecord{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		ImageRef:    m.ImageRef,
		Description: m.Description,
	}
	for _, c := range splitTags(m.Contexts) {
		r.Contexts = append(r.Contexts, types.Context(c))
	}
	for _, e := range splitTags(m.Emotions) {
		r.Emotions = append(r.Emotions, types.Emotion(e))
	}
	return r
}

// FromRecord builds a row for r at position.
func FromRecord(r types.PersonaRecord, position int) PersonaModel {
	contexts := make([]string, len(r.Contexts))
	for i, c := range r.Contexts {
		contexts[i] = string(c)
	}
	emotions := make([]string, len(r.Emotions))
	for i, e := range r.Emotions {
		emotions[i] = string(e)
	}
	return PersonaModel{
		ID:          r.ID,
		Position:    position,
		DisplayName: r.DisplayName,
		ImageRef:    r.ImageRef,
		Contexts:    strings.Join(contexts, ","),
		Emotions:    strings.Join(emotions, ","),
		Description: r.Description,
	}
}

func splitTags(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// PersonaRepository reads and writes the persona catalog.
type PersonaRepository struct {
	db *gorm.DB
}

// NewPersonaRepository creates a repository on db.
func NewPersonaRepository(db *gorm.DB) *PersonaRepository {
	return &PersonaRepository{db: db}
}

// Migrate creates or updates the personas table.
func (r *PersonaRepository) Migrate() error {
	if err := r.db.AutoMigrate(&PersonaModel{}); err != nil {
		return chatErrors.StorageError("migrate_personas", err)
	}
	return nil
}

// List returns every persona in catalog order.
func (r *PersonaRepository) List(ctx context.Context) ([]types.PersonaRecord, error) {
	var rows []PersonaModel
	if err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, chatErrors.StorageError("list_personas", err)
	}

	records := make([]types.PersonaRecord, len(rows))
	for i, row := range rows {
		records[i] = row.ToRecord()
	}
	return records, nil
}

// Get returns one persona.
func (r *PersonaRepository) Get(ctx context.Context, id string) (types.PersonaRecord, error) {
	var row PersonaModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.PersonaRecord{}, chatErrors.StorageError("get_persona", fmt.Errorf("%s: %w", id, chatErrors.ErrPersonaNotFound)).
			WithDetail("persona_id", id)
	}
	if err != nil {
		return types.PersonaRecord{}, chatErrors.StorageError("get_persona", err).WithDetail("persona_id", id)
	}
	return row.ToRecord(), nil
}

// Upsert inserts or updates one persona. New personas go to the end of the
// catalog; existing ones keep their position.
func (r *PersonaRepository) Upsert(ctx context.Context, record types.PersonaRecord) error {
	if record.ID == "" || len(record.Contexts) == 0 || len(record.Emotions) == 0 {
		return chatErrors.ValidationError("upsert_persona", chatErrors.ErrInvalidPersona)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing PersonaModel
		err := tx.Where("id = ?", record.ID).First(&existing).Error
		switch {
		case err == nil:
			row := FromRecord(record, existing.Position)
			if err := tx.Model(&existing).Select("display_name", "image_ref", "contexts", "emotions", "description").Updates(&row).Error; err != nil {
				return chatErrors.StorageError("upsert_persona", err).WithDetail("persona_id", record.ID)
			}
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			var next int64
			if err := tx.Model(&PersonaModel{}).Select("COALESCE(MAX(position), -1) + 1").Scan(&next).Error; err != nil {
				return chatErrors.StorageError("upsert_persona", err)
			}
			row := FromRecord(record, int(next))
			if err := tx.Create(&row).Error; err != nil {
				return chatErrors.StorageError("upsert_persona", err).WithDetail("persona_id", record.ID)
			}
			return nil
		default:
			return chatErrors.StorageError("upsert_persona", err).WithDetail("persona_id", record.ID)
		}
	})
}

// Reseed replaces the whole catalog in one transaction. Callers validate the
// records first; a failure leaves the previous rows untouched.
func (r *PersonaRepository) Reseed(ctx context.Context, records []types.PersonaRecord) error {
	rows := make([]PersonaModel, len(records))
	for i, rec := range records {
		rows[i] = FromRecord(rec, i)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&PersonaModel{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, 100).Error
	})
	if err != nil {
		return chatErrors.StorageError("reseed_personas", err).WithDetail("count", len(records))
	}
	return nil
}

// Count returns the number of stored personas.
func (r *PersonaRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&PersonaModel{}).Count(&n).Error; err != nil {
		return 0, chatErrors.StorageError("count_personas", err)
	}
	return n, nil
}
