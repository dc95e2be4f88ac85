package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "PT Maju Jaya", CleanText("  PT Maju \n\t Jaya "))
	assert.Equal(t, "", CleanText(" \n "))
}

func TestAbsolute(t *testing.T) {
	base := "https://www.kalibrr.id/job-board/te/it/1"

	assert.Equal(t,
		"https://www.kalibrr.id/id-ID/c/acme/jobs/231234/backend-engineer",
		Absolute(base, "/id-ID/c/acme/jobs/231234/backend-engineer#apply"))
	assert.Equal(t,
		"https://www.loker.id/lowongan/123?ref=home",
		Absolute(base, "HTTPS://WWW.LOKER.ID/lowongan/123?utm_source=x&ref=home"))
	assert.Equal(t, "", Absolute(base, "javascript:void(0)"))
	assert.Equal(t, "", Absolute(base, "  "))
}

func TestHasNumericID(t *testing.T) {
	assert.True(t, HasNumericID("https://www.kalibrr.id/id-ID/c/acme/jobs/231234/x"))
	assert.False(t, HasNumericID("https://www.kalibrr.id/id-ID/c/acme/jobs/"))
	assert.False(t, HasNumericID("https://www.kalibrr2.id/jobs"), "host digits do not count")
}

func TestExtractLabeledText(t *testing.T) {
	labels := []string{"Gaji", "Salary"}

	assert.Equal(t, "Rp 5 - 6 Juta", ExtractLabeledText("Lokasi: Jakarta\nGaji: Rp 5 - 6 Juta\nTipe: Full Time", labels, 100))
	assert.Equal(t, "IDR 8.000.000", ExtractLabeledText("Monthly salary - IDR 8.000.000 | Remote", labels, 100))
	assert.Equal(t, "", ExtractLabeledText("Tidak ada informasi", labels, 100))
	assert.Equal(t, "", ExtractLabeledText("Gaji: sangat panjang sekali", labels, 5))

	// İ lowercases to three bytes; the label must still be found
	assert.Equal(t, "Rp 7 Juta", ExtractLabeledText("KANTOR İSTANBUL\nGAJI: Rp 7 Juta", labels, 100))
}

func TestHostLimiterAndPause(t *testing.T) {
	hl := NewHostLimiter(1000, 1)
	require.NoError(t, hl.WaitURL(context.Background(), "https://www.loker.id/a"))
	require.NoError(t, hl.WaitURL(context.Background(), "::not a url"))

	var nilLimiter *HostLimiter
	assert.NoError(t, nilLimiter.WaitURL(context.Background(), "https://x"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Pause(ctx, time.Hour, 2*time.Hour), context.Canceled)

	start := time.Now()
	require.NoError(t, Pause(context.Background(), time.Millisecond, 2*time.Millisecond))
	assert.Less(t, time.Since(start), time.Second)
}
