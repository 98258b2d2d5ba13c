package postgres

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emotionai/config"
	"emotionai/internal/domain/entity"
	"emotionai/internal/domain/service"
	"emotionai/internal/infra/crypto"
	"emotionai/internal/infra/persistence/model"
)

func codecTestCipher(t *testing.T) service.FieldCipher {
	t.Helper()

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}

	cfg := &config.Config{}
	cfg.Encryption.FieldKey = base64.URLEncoding.EncodeToString(key)

	cipher, err := crypto.NewFieldCipher(cfg)
	require.NoError(t, err)

	return cipher
}

func TestSessionMapper_EncryptsConfidentialColumns(t *testing.T) {
	repo := &therapySessionRepository{codec: newFieldCodec(codecTestCipher(t))}

	session := &entity.TherapySession{
		ID:           7,
		PatientID:    3,
		Date:         time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Results:      `{"emotion_summary":{"happy":4}}`,
		Observations: "patient was calm throughout",
	}

	stored, err := repo.fromSessionDomain(session)
	require.NoError(t, err)

	// The stored columns must not reveal the plaintext.
	assert.NotContains(t, stored.Results, "emotion_summary")
	require.NotNil(t, stored.Observations)
	assert.NotContains(t, *stored.Observations, "calm")

	restored, err := repo.toSessionDomain(stored)
	require.NoError(t, err)
	assert.Equal(t, session.Results, restored.Results)
	assert.Equal(t, session.Observations, restored.Observations)
	assert.Equal(t, session.Date, restored.Date)
}

func TestSessionMapper_EmptyObservationsStaysNull(t *testing.T) {
	repo := &therapySessionRepository{codec: newFieldCodec(codecTestCipher(t))}

	stored, err := repo.fromSessionDomain(&entity.TherapySession{
		PatientID: 1,
		Date:      time.Now().UTC(),
		Results:   `{}`,
	})
	require.NoError(t, err)
	assert.Nil(t, stored.Observations)

	restored, err := repo.toSessionDomain(stored)
	require.NoError(t, err)
	assert.Empty(t, restored.Observations)
}

func TestSessionMapper_KeepsTimestampsOnUpdate(t *testing.T) {
	repo := &therapySessionRepository{codec: newFieldCodec(codecTestCipher(t))}

	createdAt := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	session := &entity.TherapySession{
		ID:        4,
		PatientID: 2,
		Date:      time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
		Results:   `{"emotion_summary":{"neutral":2}}`,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	// An observations update maps the loaded entity back to a model and saves
	// every column, so the mapper must carry the original creation timestamp.
	loaded, err := repo.toSessionDomain(mustFromSessionDomain(t, repo, session))
	require.NoError(t, err)
	loaded.Observations = "responded well to the new exercises"

	updated := mustFromSessionDomain(t, repo, loaded)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.False(t, updated.CreatedAt.IsZero())
	require.NotNil(t, updated.Observations)
}

func mustFromSessionDomain(t *testing.T, repo *therapySessionRepository, session *entity.TherapySession) *model.TherapySessionModel {
	t.Helper()

	stored, err := repo.fromSessionDomain(session)
	require.NoError(t, err)

	return stored
}

func TestSessionMapper_WrongKeyFailsWithLocation(t *testing.T) {
	writer := &therapySessionRepository{codec: newFieldCodec(codecTestCipher(t))}

	stored, err := writer.fromSessionDomain(&entity.TherapySession{
		ID:        12,
		PatientID: 1,
		Date:      time.Now().UTC(),
		Results:   `{"timeline":[]}`,
	})
	require.NoError(t, err)

	otherKey := make([]byte, 32)
	cfg := &config.Config{}
	cfg.Encryption.FieldKey = base64.URLEncoding.EncodeToString(otherKey)
	otherCipher, err := crypto.NewFieldCipher(cfg)
	require.NoError(t, err)

	reader := &therapySessionRepository{codec: newFieldCodec(otherCipher)}

	_, err = reader.toSessionDomain(stored)
	require.Error(t, err)
	// The error names the row but never its content.
	table := model.TherapySessionModel{}.TableName()
	assert.Contains(t, err.Error(), table+".results")
	assert.Contains(t, err.Error(), "12")
	assert.NotContains(t, err.Error(), "timeline")
}

func TestNoteMapper_RoundTrip(t *testing.T) {
	repo := &patientNoteRepository{codec: newFieldCodec(codecTestCipher(t))}

	note := &entity.PatientNote{
		ID:        2,
		PatientID: 5,
		Text:      "reported better sleep this week",
	}

	stored, err := repo.fromNoteDomain(note)
	require.NoError(t, err)
	assert.NotContains(t, stored.Text, "sleep")
	assert.False(t, strings.Contains(stored.Text, note.Text))

	restored, err := repo.toNoteDomain(stored)
	require.NoError(t, err)
	assert.Equal(t, note.Text, restored.Text)
}
