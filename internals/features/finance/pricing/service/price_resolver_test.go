// file: internals/features/finance/pricing/service/price_resolver_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadeKeys_Ordering(t *testing.T) {
	courseID := uuid.New()
	classID := uuid.New()

	t.Run("course dan class lengkap", func(t *testing.T) {
		keys := CascadeKeys(&courseID, &classID)
		require.Len(t, keys, 4)

		// (course, class) → (course, NULL) → (NULL, class) → (NULL, NULL)
		assert.Equal(t, RuleKey{CourseID: &courseID, ClassID: &classID}, keys[0])
		assert.Equal(t, RuleKey{CourseID: &courseID}, keys[1])
		assert.Equal(t, RuleKey{ClassID: &classID}, keys[2])
		assert.Equal(t, RuleKey{}, keys[3])
	})

	t.Run("hanya course", func(t *testing.T) {
		keys := CascadeKeys(&courseID, nil)
		require.Len(t, keys, 2)
		assert.Equal(t, RuleKey{CourseID: &courseID}, keys[0])
		assert.Equal(t, RuleKey{}, keys[1])
	})

	t.Run("hanya class", func(t *testing.T) {
		keys := CascadeKeys(nil, &classID)
		require.Len(t, keys, 2)
		assert.Equal(t, RuleKey{ClassID: &classID}, keys[0])
		assert.Equal(t, RuleKey{}, keys[1])
	})

	t.Run("tanpa course/class tetap ada fallback tenant", func(t *testing.T) {
		keys := CascadeKeys(nil, nil)
		require.Len(t, keys, 1)
		assert.Equal(t, RuleKey{}, keys[0])
	})
}
