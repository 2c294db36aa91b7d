package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/9ssi7/exponent"
	"go.uber.org/zap"

	"conexaoiris/internal/auth"
	"conexaoiris/internal/domain/categories"
	"conexaoiris/internal/domain/events"
	"conexaoiris/internal/domain/locations"
	"conexaoiris/internal/domain/users"
	"conexaoiris/internal/membership"
	"conexaoiris/internal/ratelimiter"
	"conexaoiris/internal/store"
	"conexaoiris/internal/views"
)

// newTestApplication wires the app onto in-memory stubs so handlers can be
// exercised through the real router without a database.
func newTestApplication(storage *store.Storage) *application {
	logger := zap.NewNop().Sugar()

	codec, err := membership.NewCardCodec("test-salt")
	if err != nil {
		panic(err)
	}

	return &application{
		config: config{
			addr: ":0",
			env:  "test",
			auth: authConfig{
				basic: basicConfig{user: "admin", pass: "secret"},
			},
			rateLimiter: ratelimiter.Config{Enabled: false},
		},
		store:  storage,
		logger: logger,
		mailer: &stubMailer{},
		authenticator: auth.NewJWTAuthenticator(
			"access-secret", "refresh-secret", "test", "test",
			time.Hour, time.Hour,
		),
		rateLimiter: ratelimiter.NewFixedWindowLimiter(100, time.Second),
		cardCodec:   codec,
		push:        &stubPushSender{},
		views:       &views.LogInvalidator{Logger: logger},
	}
}

func newTestStorage() *store.Storage {
	return &store.Storage{
		Users:      newStubUserStore(),
		Categories: &stubCategoryStore{list: defaultCategories()},
		Locations:  newStubLocationStore(),
		Events:     newStubEventStore(),
		PushTokens: &stubPushTokenStore{tokens: map[int64][]string{}},
	}
}

func defaultCategories() []categories.Category {
	return []categories.Category{
		{ID: 1, Key: "festa", Label: "Festa"},
		{ID: 2, Key: "workshop", Label: "Workshop"},
		{ID: 3, Key: "cultural", Label: "Cultural"},
	}
}

type stubMailer struct{}

func (m *stubMailer) Send(templateFile, username, email string, data any) (int, error) {
	return http.StatusOK, nil
}

type stubPushSender struct {
	mu   sync.Mutex
	sent []*exponent.Message
}

func (s *stubPushSender) Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msgs...)
	return nil, nil
}

func (s *stubPushSender) PublishSingle(ctx context.Context, msg *exponent.Message) ([]*exponent.MessageResponse, error) {
	return s.Publish(ctx, []*exponent.Message{msg})
}

// ---- users ----

type stubUserStore struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*users.User
	// profile state keyed by user
	profiles map[int64]*users.Profile
	names    map[int64]string
	tokens   map[int64]string
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{
		nextID:   1,
		byID:     map[int64]*users.User{},
		profiles: map[int64]*users.Profile{},
		names:    map[int64]string{},
		tokens:   map[int64]string{},
	}
}

func (s *stubUserStore) Create(ctx context.Context, user *users.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == user.Email {
			return users.ErrDuplicateEmail
		}
	}
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.byID[user.ID] = user
	return nil
}

func (s *stubUserStore) GetByID(ctx context.Context, userID int64) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[userID]; ok {
		return u, nil
	}
	return nil, users.ErrNotFound
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, users.ErrNotFound
}

func (s *stubUserStore) GetProfile(ctx context.Context, userID int64) (*users.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[userID]; ok {
		return p, nil
	}
	return nil, users.ErrNotFound
}

func (s *stubUserStore) UpdateProfile(ctx context.Context, userID int64, update users.ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[userID]
	if !ok {
		return users.ErrNotFound
	}
	u.Name = update.Name
	s.profiles[userID] = &users.Profile{
		UserID:            userID,
		SexualOrientation: update.SexualOrientation,
		City:              update.City,
	}
	return nil
}

func (s *stubUserStore) SetImageURL(ctx context.Context, userID int64, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[userID]; ok {
		u.ImageURL = &url
		return nil
	}
	return users.ErrNotFound
}

func (s *stubUserStore) SaveRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID] = refreshToken
	return nil
}

func (s *stubUserStore) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tokens[userID]; ok {
		return t, nil
	}
	return "", users.ErrNotFound
}

func (s *stubUserStore) DeleteRefreshToken(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID)
	return nil
}

func (s *stubUserStore) UpdateResetToken(ctx context.Context, email, resetToken string, resetTokenExpires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			u.ResetPasswordToken = resetToken
			u.ResetPasswordExpires = resetTokenExpires
			return nil
		}
	}
	return users.ErrNotFound
}

func (s *stubUserStore) GetByResetToken(ctx context.Context, resetToken string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.ResetPasswordToken == resetToken {
			return u, nil
		}
	}
	return nil, users.ErrNotFound
}

func (s *stubUserStore) ResetPassword(ctx context.Context, userID int64, passwordHash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[userID]; ok {
		u.ResetPasswordToken = ""
		u.ResetPasswordExpires = time.Time{}
		return nil
	}
	return users.ErrNotFound
}

// ---- categories ----

type stubCategoryStore struct {
	list []categories.Category
	err  error
}

func (s *stubCategoryStore) List(ctx context.Context) ([]categories.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

// ---- locations ----

type stubLocationStore struct {
	mu     sync.Mutex
	nextID int64
	rows   []locations.LocationSuggestion
	// category IDs that exist; Create checks them like the repository does
	knownCategories map[int64]categories.Category
	createCalls     int
}

func newStubLocationStore() *stubLocationStore {
	known := map[int64]categories.Category{}
	for _, c := range defaultCategories() {
		known[c.ID] = c
	}
	return &stubLocationStore{nextID: 1, knownCategories: known}
}

func (s *stubLocationStore) Create(ctx context.Context, in *locations.CreateLocationInput) (*locations.LocationSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++

	cat, ok := s.knownCategories[in.CategoryID]
	if !ok {
		return nil, locations.ErrCategoryNotFound
	}

	loc := locations.LocationSuggestion{
		ID:            s.nextID,
		Name:          in.Name,
		CategoryID:    in.CategoryID,
		Category:      &cat,
		Address:       in.Address,
		Description:   in.Description,
		Phone:         in.Phone,
		Website:       in.Website,
		LgbtqOwned:    in.LgbtqOwned,
		SafetyRating:  in.SafetyRating,
		PublicVisible: in.PublicVisible,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		Tags:          in.Tags,
		UserID:        in.UserID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	s.nextID++
	s.rows = append(s.rows, loc)
	return &loc, nil
}

func (s *stubLocationStore) GetByID(ctx context.Context, id int64) (*locations.LocationSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			return &s.rows[i], nil
		}
	}
	return nil, locations.ErrNotFound
}

func (s *stubLocationStore) ListPublic(ctx context.Context) ([]locations.LocationSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]locations.LocationSuggestion, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *stubLocationStore) ListByUser(ctx context.Context, userID int64) ([]locations.LocationSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []locations.LocationSuggestion
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].UserID != nil && *s.rows[i].UserID == userID {
			out = append(out, s.rows[i])
		}
	}
	return out, nil
}

func (s *stubLocationStore) ListWithCoordinates(ctx context.Context, categoryKey string) ([]locations.LocationSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []locations.LocationSuggestion
	for _, l := range s.rows {
		if l.Latitude == nil || l.Longitude == nil {
			continue
		}
		if categoryKey != "" && categoryKey != "all" && (l.Category == nil || l.Category.Key != categoryKey) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// ---- events ----

type stubEventStore struct {
	mu              sync.Mutex
	nextID          int64
	rows            []events.EventSuggestion
	knownCategories map[int64]categories.Category
	createCalls     int
}

func newStubEventStore() *stubEventStore {
	known := map[int64]categories.Category{}
	for _, c := range defaultCategories() {
		known[c.ID] = c
	}
	return &stubEventStore{nextID: 1, knownCategories: known}
}

func (s *stubEventStore) Create(ctx context.Context, in *events.CreateEventInput) (*events.EventSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++

	cat, ok := s.knownCategories[in.CategoryID]
	if !ok {
		return nil, events.ErrCategoryNotFound
	}

	ev := events.EventSuggestion{
		ID:            s.nextID,
		Title:         in.Title,
		CategoryID:    in.CategoryID,
		Category:      &cat,
		Description:   in.Description,
		Date:          in.Date,
		Time:          in.Time,
		Location:      in.Location,
		Organizer:     in.Organizer,
		Price:         in.Price,
		LgbtqFriendly: in.LgbtqFriendly,
		Tags:          in.Tags,
		Status:        events.StatusPending,
		UserID:        in.UserID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	s.nextID++
	s.rows = append(s.rows, ev)
	return &ev, nil
}

func (s *stubEventStore) GetByID(ctx context.Context, id int64) (*events.EventSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			ev := s.rows[i]
			return &ev, nil
		}
	}
	return nil, events.ErrNotFound
}

func (s *stubEventStore) ListFiltered(ctx context.Context, filter events.Filter) ([]events.EventSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []events.EventSuggestion
	for _, ev := range s.rows {
		if ev.Status != events.StatusApproved {
			continue
		}
		if filter.CategoryKey != "" && filter.CategoryKey != "all" &&
			(ev.Category == nil || ev.Category.Key != filter.CategoryKey) {
			continue
		}
		if filter.LgbtqFriendly != nil && ev.LgbtqFriendly != *filter.LgbtqFriendly {
			continue
		}
		if len(filter.Tags) > 0 && !hasAnyTag(ev.Tags, filter.Tags) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (s *stubEventStore) ListByUser(ctx context.Context, userID int64) ([]events.EventSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []events.EventSuggestion
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].UserID != nil && *s.rows[i].UserID == userID {
			out = append(out, s.rows[i])
		}
	}
	return out, nil
}

func (s *stubEventStore) ListForModeration(ctx context.Context, filter events.ModerationFilter) ([]events.EventSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []events.EventSuggestion
	for i := len(s.rows) - 1; i >= 0; i-- {
		if filter.Status != nil && s.rows[i].Status != *filter.Status {
			continue
		}
		out = append(out, s.rows[i])
	}
	return out, nil
}

func (s *stubEventStore) UpdateStatus(ctx context.Context, id int64, status events.Status) (*events.EventSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Status = status
			s.rows[i].UpdatedAt = time.Now()
			ev := s.rows[i]
			return &ev, nil
		}
	}
	return nil, events.ErrNotFound
}

// ---- push tokens ----

type stubPushTokenStore struct {
	mu     sync.Mutex
	tokens map[int64][]string
}

func (s *stubPushTokenStore) AddOrUpdate(ctx context.Context, userID int64, token string, deviceInfo json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens[userID] {
		if t == token {
			return nil
		}
	}
	s.tokens[userID] = append(s.tokens[userID], token)
	return nil
}

func (s *stubPushTokenStore) Remove(ctx context.Context, userID int64, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.tokens[userID][:0]
	for _, t := range s.tokens[userID] {
		if t != token {
			out = append(out, t)
		}
	}
	s.tokens[userID] = out
	return nil
}

func (s *stubPushTokenStore) RemoveByTokenList(ctx context.Context, tokens []string) error {
	return nil
}

func (s *stubPushTokenStore) GetTokensByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[int64][]string{}
	for _, id := range userIDs {
		if ts, ok := s.tokens[id]; ok {
			out[id] = append([]string{}, ts...)
		}
	}
	return out, nil
}

func (s *stubPushTokenStore) PruneStaleTokens(ctx context.Context, olderThan time.Duration) error {
	return nil
}
