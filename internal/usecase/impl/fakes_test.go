package impl

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"emotionai/internal/domain/entity"
	"emotionai/internal/domain/repository"
	"emotionai/internal/domain/service"
)

// In-memory repository fakes shared by the service tests.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]*entity.Account

	findByIDErr    error
	findByEmailErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{nextID: 1, accounts: make(map[int64]*entity.Account)}
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id int64) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findByIDErr != nil {
		return nil, r.findByIDErr
	}

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	copied := *account

	return &copied, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findByEmailErr != nil {
		return nil, r.findByEmailErr
	}

	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account.ID = r.nextID
	r.nextID++
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}

func (r *fakeAccountRepo) ListByRole(_ context.Context, role entity.Role) ([]*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.Account
	for _, account := range r.accounts {
		if account.Role == role {
			copied := *account
			result = append(result, &copied)
		}
	}

	return result, nil
}

func (r *fakeAccountRepo) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	accounts, _ := r.ListByRole(ctx, role)

	return int64(len(accounts)), nil
}

type fakePatientRepo struct {
	mu       sync.Mutex
	nextID   int64
	patients map[int64]*entity.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{nextID: 1, patients: make(map[int64]*entity.Patient)}
}

func (r *fakePatientRepo) Create(_ context.Context, patient *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	patient.ID = r.nextID
	r.nextID++
	copied := *patient
	r.patients[patient.ID] = &copied

	return nil
}

func (r *fakePatientRepo) FindByID(_ context.Context, id, accountID int64) (*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	patient, ok := r.patients[id]
	if !ok || patient.AccountID != accountID {
		return nil, repository.ErrPatientNotFound
	}
	copied := *patient

	return &copied, nil
}

func (r *fakePatientRepo) ListByAccount(_ context.Context, accountID int64) ([]*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.Patient
	for _, patient := range r.patients {
		if patient.AccountID == accountID {
			copied := *patient
			result = append(result, &copied)
		}
	}

	return result, nil
}

func (r *fakePatientRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.patients)), nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*entity.TherapySession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{nextID: 1, sessions: make(map[int64]*entity.TherapySession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.TherapySession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session.ID = r.nextID
	r.nextID++
	copied := *session
	r.sessions[session.ID] = &copied

	return nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id, patientID int64) (*entity.TherapySession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok || session.PatientID != patientID {
		return nil, repository.ErrSessionNotFound
	}
	copied := *session

	return &copied, nil
}

func (r *fakeSessionRepo) ListByPatient(_ context.Context, patientID int64) ([]*entity.TherapySession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.TherapySession
	for _, session := range r.sessions {
		if session.PatientID == patientID {
			copied := *session
			result = append(result, &copied)
		}
	}
	// Stable date order, the way the real repository lists.
	for i := 1; i < len(result); i++ {
		for j := i; j > 0 && result[j].Date.Before(result[j-1].Date); j-- {
			result[j], result[j-1] = result[j-1], result[j]
		}
	}

	return result, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *entity.TherapySession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *session
	r.sessions[session.ID] = &copied

	return nil
}

type fakeNoteRepo struct {
	mu     sync.Mutex
	nextID int64
	notes  []*entity.PatientNote
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{nextID: 1}
}

func (r *fakeNoteRepo) Create(_ context.Context, note *entity.PatientNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	note.ID = r.nextID
	r.nextID++
	note.CreatedAt = time.Now()
	copied := *note
	r.notes = append(r.notes, &copied)

	return nil
}

func (r *fakeNoteRepo) ListByPatient(_ context.Context, patientID int64) ([]*entity.PatientNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.PatientNote
	for _, note := range r.notes {
		if note.PatientID == patientID {
			copied := *note
			result = append(result, &copied)
		}
	}

	return result, nil
}

// fakeTxManager runs the callback against a factory over the shared fakes,
// without any transactional semantics.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

type fakeRepoFactory struct {
	accounts *fakeAccountRepo
	patients *fakePatientRepo
	sessions *fakeSessionRepo
	notes    *fakeNoteRepo
}

func (f *fakeRepoFactory) AccountRepo() repository.AccountRepository { return f.accounts }
func (f *fakeRepoFactory) PatientRepo() repository.PatientRepository { return f.patients }
func (f *fakeRepoFactory) TherapySessionRepo() repository.TherapySessionRepository {
	return f.sessions
}
func (f *fakeRepoFactory) PatientNoteRepo() repository.PatientNoteRepository { return f.notes }

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

// fakeAnalyzer returns a canned analysis without any upstream call.
type fakeAnalyzer struct {
	analysis *entity.VideoAnalysis
	err      error
}

func (a *fakeAnalyzer) AnalyzeVideo(_ context.Context, _ string, video io.Reader) (*entity.VideoAnalysis, error) {
	_, _ = io.Copy(io.Discard, video)
	if a.err != nil {
		return nil, a.err
	}

	return a.analysis, nil
}

// fakeTokenService issues and verifies unsigned "token:<subject>" strings.
type fakeTokenService struct {
	issued map[string]string
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{issued: make(map[string]string)}
}

func (s *fakeTokenService) Issue(claims map[string]any) (string, error) {
	return s.IssueWithTTL(claims, time.Minute)
}

func (s *fakeTokenService) IssueWithTTL(claims map[string]any, _ time.Duration) (string, error) {
	subject := coerceFakeSubject(claims["sub"])
	token := "token:" + subject
	s.issued[token] = subject

	return token, nil
}

func (s *fakeTokenService) Verify(token string) service.VerifyResult {
	subject, ok := s.issued[token]
	if !ok {
		return service.VerifyResult{Failure: service.FailureMalformed}
	}

	return service.VerifyResult{Claims: &service.Claims{Subject: subject, ExpiresAt: time.Now().Add(time.Minute)}}
}

func coerceFakeSubject(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case int64:
		return strconv.FormatInt(value, 10)
	case int:
		return strconv.Itoa(value)
	default:
		return ""
	}
}
