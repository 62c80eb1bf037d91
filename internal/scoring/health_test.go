package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cleanroom/internal/domain"
)

func scoredRecord(score int) domain.Record {
	return domain.Record{QualityScore: score, Usability: domain.ClassifyScore(score)}
}

func TestClassifyHealth(t *testing.T) {
	t.Run("empty batch is FAIL", func(t *testing.T) {
		health := ClassifyHealth(nil)
		assert.Equal(t, HealthFail, health.Status)
		assert.Equal(t, 0, health.RowsAnalyzed)
	})

	t.Run("high scores with no bad rows is GOOD", func(t *testing.T) {
		batch := []domain.Record{scoredRecord(100), scoredRecord(95), scoredRecord(90)}
		health := ClassifyHealth(batch)
		assert.Equal(t, HealthGood, health.Status)
		assert.Equal(t, 95.0, health.AverageScore)
		assert.Equal(t, 0.0, health.BadRowPct)
	})

	t.Run("average exactly 85 with 5 percent bad rows is still GOOD", func(t *testing.T) {
		batch := make([]domain.Record, 0, 20)
		// 19 rows at 87 and one bad row at 47: avg 85.0, bad 5%.
		for i := 0; i < 19; i++ {
			batch = append(batch, scoredRecord(87))
		}
		batch = append(batch, scoredRecord(47))

		health := ClassifyHealth(batch)
		assert.Equal(t, 85.0, health.AverageScore)
		assert.Equal(t, 5.0, health.BadRowPct)
		assert.Equal(t, HealthGood, health.Status)
	})

	t.Run("middling scores are DEGRADED", func(t *testing.T) {
		batch := []domain.Record{scoredRecord(80), scoredRecord(75), scoredRecord(70)}
		health := ClassifyHealth(batch)
		assert.Equal(t, HealthDegraded, health.Status)
	})

	t.Run("mostly bad rows is FAIL", func(t *testing.T) {
		batch := []domain.Record{scoredRecord(40), scoredRecord(35), scoredRecord(90)}
		health := ClassifyHealth(batch)
		assert.Equal(t, HealthFail, health.Status)
	})
}
