package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// Unassigning a question must free its (challenge, question) slot
// immediately so the question can be re-assigned. A soft-delete column
// would keep the dead row inside the composite unique index and turn
// the re-assignment into a duplicate-key violation, so the join model
// must not carry one.
func TestChallengeQuestionDeletesAreHard(t *testing.T) {
	s, err := schema.Parse(&ChallengeQuestion{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	assert.Nil(t, s.LookUpField("DeletedAt"), "ChallengeQuestion must not soft-delete")

	// The composite unique index is what makes lingering rows dangerous;
	// it must still guard both columns.
	for _, name := range []string{"ChallengeID", "QuestionID"} {
		field := s.LookUpField(name)
		require.NotNil(t, field)
		assert.Equal(t, "idx_challenge_question", field.TagSettings["UNIQUEINDEX"])
	}
}
