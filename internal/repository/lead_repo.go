package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quotelinker/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// AutoMigrate creates the leads table for fresh databases.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&leadModel{})
}

type leadModel struct {
	ID int64 `gorm:"column:id;primaryKey"`

	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
	Email     string `gorm:"column:email;index"`
	Phone     string `gorm:"column:phone"`

	Age               int    `gorm:"column:age"`
	Gender            string `gorm:"column:gender"`
	TobaccoUse        string `gorm:"column:tobacco_use"`
	CoverageAmount    string `gorm:"column:coverage_amount"`
	BestTimeToContact string `gorm:"column:best_time_to_contact"`
	ZipCode           string `gorm:"column:zip_code"`

	Status string  `gorm:"column:status;index"`
	Source *string `gorm:"column:source"`

	IPAddress *string `gorm:"column:ip_address"`
	UserAgent *string `gorm:"column:user_agent"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (leadModel) TableName() string { return "leads" }

func toDomainLead(m leadModel) *domain.Lead {
	var source, ip, ua string
	if m.Source != nil {
		source = *m.Source
	}
	if m.IPAddress != nil {
		ip = *m.IPAddress
	}
	if m.UserAgent != nil {
		ua = *m.UserAgent
	}

	return &domain.Lead{
		ID:                m.ID,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Email:             m.Email,
		Phone:             m.Phone,
		Age:               m.Age,
		Gender:            domain.Gender(m.Gender),
		TobaccoUse:        domain.TobaccoUse(m.TobaccoUse),
		CoverageAmount:    m.CoverageAmount,
		BestTimeToContact: domain.ContactTime(m.BestTimeToContact),
		ZipCode:           m.ZipCode,
		Status:            domain.LeadStatus(m.Status),
		Source:            source,
		IPAddress:         ip,
		UserAgent:         ua,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toLeadModel(l *domain.Lead) leadModel {
	return leadModel{
		ID:                l.ID,
		FirstName:         l.FirstName,
		LastName:          l.LastName,
		Email:             l.Email,
		Phone:             l.Phone,
		Age:               l.Age,
		Gender:            string(l.Gender),
		TobaccoUse:        string(l.TobaccoUse),
		CoverageAmount:    l.CoverageAmount,
		BestTimeToContact: string(l.BestTimeToContact),
		ZipCode:           l.ZipCode,
		Status:            string(l.Status),
		Source:            nullable(l.Source),
		IPAddress:         nullable(l.IPAddress),
		UserAgent:         nullable(l.UserAgent),
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create inserts a new lead and fills in the database-assigned ID. Every
// submission creates an independent record; duplicates are not rejected here.
func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) error {
	m := toLeadModel(l)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return readableError("create lead", tx.Error)
	}
	*l = *toDomainLead(m)
	return nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	var m leadModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, readableError("get lead", tx.Error)
	}
	return toDomainLead(m), nil
}

// List returns leads newest first, optionally filtered by status.
func (r *LeadRepository) List(ctx context.Context, status *domain.LeadStatus, limit, offset int) ([]*domain.Lead, int64, error) {
	q := r.db.WithContext(ctx).Model(&leadModel{})
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var total int64
	if tx := q.Count(&total); tx.Error != nil {
		return nil, 0, readableError("count leads", tx.Error)
	}

	var models []leadModel
	tx := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models)
	if tx.Error != nil {
		return nil, 0, readableError("list leads", tx.Error)
	}

	out := make([]*domain.Lead, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainLead(m))
	}
	return out, total, nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id int64, status domain.LeadStatus) error {
	tx := r.db.WithContext(ctx).Model(&leadModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return readableError("update lead status", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LeadRepository) CountByStatus(ctx context.Context) (map[domain.LeadStatus]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	tx := r.db.WithContext(ctx).Model(&leadModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows)
	if tx.Error != nil {
		return nil, readableError("lead stats", tx.Error)
	}

	counts := make(map[domain.LeadStatus]int64, len(rows))
	for _, r := range rows {
		counts[domain.LeadStatus(r.Status)] = r.Count
	}
	return counts, nil
}

// readableError keeps the postgres detail out of user-facing messages while
// still naming the failed operation.
func readableError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %s (SQLSTATE %s)", op, pgErr.Message, pgErr.Code)
	}
	return fmt.Errorf("%s: %w", op, err)
}
