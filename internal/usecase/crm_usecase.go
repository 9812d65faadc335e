package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/internal/repository"
)

// RecentLeadsLimit is how many leads the dashboard's recent list shows.
const RecentLeadsLimit = 5

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	return nil
}

// CompanyService manages companies.
type CompanyService interface {
	List(ctx context.Context) ([]*entity.Company, error)
	Create(ctx context.Context, c *entity.Company) (*entity.Company, error)
	Get(ctx context.Context, id int64) (*entity.Company, error)
	Update(ctx context.Context, c *entity.Company) (*entity.Company, error)
	Delete(ctx context.Context, id int64) error
}

type companyUseCase struct {
	repo repository.CompanyRepository
}

func NewCompanyUseCase(repo repository.CompanyRepository) CompanyService {
	return &companyUseCase{repo: repo}
}

func (uc *companyUseCase) List(ctx context.Context) ([]*entity.Company, error) {
	return uc.repo.List(ctx)
}

func (uc *companyUseCase) Create(ctx context.Context, c *entity.Company) (*entity.Company, error) {
	if err := required("name", c.Name); err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, c)
}

func (uc *companyUseCase) Get(ctx context.Context, id int64) (*entity.Company, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *companyUseCase) Update(ctx context.Context, c *entity.Company) (*entity.Company, error) {
	if err := required("name", c.Name); err != nil {
		return nil, err
	}
	return uc.repo.Update(ctx, c)
}

func (uc *companyUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// ContactService manages contacts.
type ContactService interface {
	List(ctx context.Context) ([]*entity.Contact, error)
	Create(ctx context.Context, c *entity.Contact) (*entity.Contact, error)
	Update(ctx context.Context, c *entity.Contact) (*entity.Contact, error)
	Delete(ctx context.Context, id int64) error
	ExportXLSX(ctx context.Context) ([]byte, error)
}

type contactUseCase struct {
	repo   repository.ContactRepository
	sheets repository.SheetExporter
}

func NewContactUseCase(repo repository.ContactRepository, sheets repository.SheetExporter) ContactService {
	return &contactUseCase{repo: repo, sheets: sheets}
}

func (uc *contactUseCase) List(ctx context.Context) ([]*entity.Contact, error) {
	return uc.repo.List(ctx)
}

// Create also registers the contact's company when it is not known yet.
func (uc *contactUseCase) Create(ctx context.Context, c *entity.Contact) (*entity.Contact, error) {
	if err := required("name", c.Name); err != nil {
		return nil, err
	}
	c.Company = strings.TrimSpace(c.Company)
	return uc.repo.Create(ctx, c)
}

func (uc *contactUseCase) Update(ctx context.Context, c *entity.Contact) (*entity.Contact, error) {
	if err := required("name", c.Name); err != nil {
		return nil, err
	}
	return uc.repo.Update(ctx, c)
}

func (uc *contactUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *contactUseCase) ExportXLSX(ctx context.Context) ([]byte, error) {
	contacts, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	return uc.sheets.ContactsXLSX(contacts)
}

// LeadService manages the sales pipeline.
type LeadService interface {
	List(ctx context.Context) ([]*entity.Lead, error)
	Create(ctx context.Context, l *entity.Lead) (*entity.Lead, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*entity.Lead, error)
	Recent(ctx context.Context) ([]*entity.Lead, error)
}

type leadUseCase struct {
	repo repository.LeadRepository
}

func NewLeadUseCase(repo repository.LeadRepository) LeadService {
	return &leadUseCase{repo: repo}
}

func (uc *leadUseCase) List(ctx context.Context) ([]*entity.Lead, error) {
	return uc.repo.List(ctx)
}

func (uc *leadUseCase) Create(ctx context.Context, l *entity.Lead) (*entity.Lead, error) {
	if err := required("name", l.Name); err != nil {
		return nil, err
	}
	if l.Value < 0 {
		return nil, fmt.Errorf("%w: value must not be negative", ErrInvalidInput)
	}
	return uc.repo.Create(ctx, l)
}

func (uc *leadUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*entity.Lead, error) {
	if err := required("status", status); err != nil {
		return nil, err
	}
	return uc.repo.UpdateStatus(ctx, id, status)
}

func (uc *leadUseCase) Recent(ctx context.Context) ([]*entity.Lead, error) {
	return uc.repo.Recent(ctx, RecentLeadsLimit)
}

// ActivityService logs interactions.
type ActivityService interface {
	List(ctx context.Context) ([]*entity.Activity, error)
	Create(ctx context.Context, a *entity.Activity) (*entity.Activity, error)
	Delete(ctx context.Context, id int64) error
}

type activityUseCase struct {
	repo repository.ActivityRepository
	now  func() time.Time
}

func NewActivityUseCase(repo repository.ActivityRepository) ActivityService {
	return &activityUseCase{repo: repo, now: time.Now}
}

func (uc *activityUseCase) List(ctx context.Context) ([]*entity.Activity, error) {
	return uc.repo.List(ctx)
}

// Create stamps the activity with the current UTC minute, ignoring any client timestamp.
func (uc *activityUseCase) Create(ctx context.Context, a *entity.Activity) (*entity.Activity, error) {
	if err := required("title", a.Title); err != nil {
		return nil, err
	}
	a.Timestamp = uc.now().UTC().Format(entity.ActivityTimestampLayout)
	return uc.repo.Create(ctx, a)
}

func (uc *activityUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// ReminderService manages reminders and announces new ones as notifications.
type ReminderService interface {
	List(ctx context.Context) ([]*entity.Reminder, error)
	Create(ctx context.Context, task, due string) (*entity.Reminder, error)
	SetDone(ctx context.Context, id int64, done bool) (*entity.Reminder, error)
	Delete(ctx context.Context, id int64) error
}

type reminderUseCase struct {
	repo repository.ReminderRepository
	now  func() time.Time
}

func NewReminderUseCase(repo repository.ReminderRepository) ReminderService {
	return &reminderUseCase{repo: repo, now: time.Now}
}

func (uc *reminderUseCase) List(ctx context.Context) ([]*entity.Reminder, error) {
	return uc.repo.List(ctx)
}

func (uc *reminderUseCase) Create(ctx context.Context, task, due string) (*entity.Reminder, error) {
	if err := required("task", task); err != nil {
		return nil, err
	}
	n := &entity.Notification{
		Type:      entity.NotificationTypeReminder,
		Title:     "Scheduled: " + task,
		Message:   fmt.Sprintf("Task: %s\nDue: %s", task, due),
		Timestamp: uc.now().UTC(),
	}
	return uc.repo.CreateWithNotification(ctx, &entity.Reminder{Task: task, Due: due}, n)
}

func (uc *reminderUseCase) SetDone(ctx context.Context, id int64, done bool) (*entity.Reminder, error) {
	return uc.repo.SetDone(ctx, id, done)
}

func (uc *reminderUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

type NotificationService interface {
	List(ctx context.Context) ([]*entity.Notification, error)
	Create(ctx context.Context, n *entity.Notification) (*entity.Notification, error)
	MarkRead(ctx context.Context, id int64, read bool) (*entity.Notification, error)
}

type notificationUseCase struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

func NewNotificationUseCase(repo repository.NotificationRepository) NotificationService {
	return &notificationUseCase{repo: repo, now: time.Now}
}

func (uc *notificationUseCase) List(ctx context.Context) ([]*entity.Notification, error) {
	return uc.repo.List(ctx)
}

func (uc *notificationUseCase) Create(ctx context.Context, n *entity.Notification) (*entity.Notification, error) {
	if err := required("title", n.Title); err != nil {
		return nil, err
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = uc.now().UTC()
	}
	return uc.repo.Create(ctx, n)
}

func (uc *notificationUseCase) MarkRead(ctx context.Context, id int64, read bool) (*entity.Notification, error) {
	return uc.repo.MarkRead(ctx, id, read)
}

type ComplianceService interface {
	List(ctx context.Context) ([]*entity.Compliance, error)
	Create(ctx context.Context, c *entity.Compliance) (*entity.Compliance, error)
}

type complianceUseCase struct {
	repo repository.ComplianceRepository
}

func NewComplianceUseCase(repo repository.ComplianceRepository) ComplianceService {
	return &complianceUseCase{repo: repo}
}

func (uc *complianceUseCase) List(ctx context.Context) ([]*entity.Compliance, error) {
	return uc.repo.List(ctx)
}

func (uc *complianceUseCase) Create(ctx context.Context, c *entity.Compliance) (*entity.Compliance, error) {
	if err := required("name", c.Name); err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, c)
}
