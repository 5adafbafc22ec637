package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bakery-crew/internal/domain"
)

// fakeUserRepo is an in-memory directory store for tests.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) add(user domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		r.nextID++
		user.ID = r.nextID
	} else if user.ID > r.nextID {
		r.nextID = user.ID
	}
	user.CreatedAt = time.Now()
	stored := user
	r.users[stored.ID] = &stored
	return &stored
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	stored := r.add(*user)
	user.ID = stored.ID
	user.CreatedAt = stored.CreatedAt
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) FindManagerByShift(_ context.Context, shift domain.Shift) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		user := r.users[id]
		if user.Role == domain.RoleManager && user.Shift != nil && *user.Shift == shift {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Name = user.Name
	stored.Phone = user.Phone
	stored.Shift = user.Shift
	return nil
}

func (r *fakeUserRepo) UpdateApproval(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Approved = true
	return nil
}

func (r *fakeUserRepo) UpdateManager(_ context.Context, id int64, managerID *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.ManagerID = managerID
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	delete(r.users, id)
	return stored, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, user := range r.users {
		result = append(result, *user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeUserRepo) ListPending(_ context.Context) ([]domain.User, error) {
	all, _ := r.List(context.Background())
	var result []domain.User
	for _, user := range all {
		if !user.Approved {
			result = append(result, user)
		}
	}
	return result, nil
}

// fakeMessageRepo is an in-memory message store for tests.
type fakeMessageRepo struct {
	mu       sync.Mutex
	nextID   int64
	messages []*domain.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Insert(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	msg.ID = r.nextID
	msg.SentAt = time.Now()
	copied := *msg
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) ListInbox(_ context.Context, userID int64) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Message
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].ReceiverID == userID {
			result = append(result, *r.messages[i])
		}
	}
	return result, nil
}

func (r *fakeMessageRepo) ListSent(_ context.Context, userID int64) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Message
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].SenderID == userID {
			result = append(result, *r.messages[i])
		}
	}
	return result, nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id, userID int64) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range r.messages {
		if msg.ID == id && (msg.SenderID == userID || msg.ReceiverID == userID) {
			copied := *msg
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, id int64) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range r.messages {
		if msg.ID == id {
			msg.IsRead = true
			copied := *msg
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// fakeEventRepo is an in-memory event store for tests.
type fakeEventRepo struct {
	mu           sync.Mutex
	nextID       int64
	events       map[int64]*domain.Event
	applications map[int64][]int64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:       make(map[int64]*domain.Event),
		applications: make(map[int64][]int64),
	}
}

func (r *fakeEventRepo) Create(_ context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	event.ID = r.nextID
	event.CreatedAt = time.Now()
	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) List(_ context.Context) ([]domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Event
	for _, event := range r.events {
		result = append(result, *event)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) Apply(_ context.Context, eventID, userID int64) (*domain.EventApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications[eventID] {
		if existing == userID {
			return &domain.EventApplication{EventID: eventID, UserID: userID}, nil
		}
	}
	r.applications[eventID] = append(r.applications[eventID], userID)
	return &domain.EventApplication{
		ID:        int64(len(r.applications[eventID])),
		EventID:   eventID,
		UserID:    userID,
		AppliedAt: time.Now(),
	}, nil
}

func (r *fakeEventRepo) CancelApplication(_ context.Context, eventID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	apps := r.applications[eventID]
	for i, existing := range apps {
		if existing == userID {
			r.applications[eventID] = append(apps[:i], apps[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeEventRepo) ListApplicants(_ context.Context, eventID int64) ([]domain.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Applicant
	for _, userID := range r.applications[eventID] {
		result = append(result, domain.Applicant{ID: userID})
	}
	return result, nil
}

// fakeDonationRepo is an in-memory donation store for tests.
type fakeDonationRepo struct {
	mu        sync.Mutex
	nextID    int64
	donations map[int64]*domain.Donation
	payments  []*domain.DonationPayment
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{donations: make(map[int64]*domain.Donation)}
}

func (r *fakeDonationRepo) Create(_ context.Context, donation *domain.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	donation.ID = r.nextID
	donation.CreatedAt = time.Now()
	copied := *donation
	r.donations[donation.ID] = &copied
	return nil
}

func (r *fakeDonationRepo) GetByID(_ context.Context, id int64) (*domain.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	donation, ok := r.donations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *donation
	return &copied, nil
}

func (r *fakeDonationRepo) List(_ context.Context) ([]domain.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Donation
	for _, donation := range r.donations {
		result = append(result, *donation)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeDonationRepo) ListActive(_ context.Context) ([]domain.Donation, error) {
	all, _ := r.List(context.Background())
	now := time.Now()
	var result []domain.Donation
	for _, donation := range all {
		if donation.Active(now) {
			result = append(result, donation)
		}
	}
	return result, nil
}

func (r *fakeDonationRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.donations[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.donations, id)
	return nil
}

func (r *fakeDonationRepo) RecordPayment(_ context.Context, payment *domain.DonationPayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment.ID = int64(len(r.payments) + 1)
	payment.PaidAt = time.Now()
	copied := *payment
	r.payments = append(r.payments, &copied)
	return nil
}

func (r *fakeDonationRepo) ListApplicants(_ context.Context, donationID int64) ([]domain.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[int64]bool)
	var result []domain.Applicant
	for _, payment := range r.payments {
		if payment.DonationID == donationID && !seen[payment.UserID] {
			seen[payment.UserID] = true
			result = append(result, domain.Applicant{ID: payment.UserID})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
