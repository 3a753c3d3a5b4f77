package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMediaSlot(t *testing.T) {
	cases := map[string]MediaSlot{
		"headshot":    SlotHeadshot,
		"Head-Shot":   SlotHeadshot,
		" MIDSHOT ":   SlotMidshot,
		"long-shot":   SlotLongshot,
		"intro_video": SlotIntroVideo,
		"Intro-Video": SlotIntroVideo,
	}
	for in, want := range cases {
		got, ok := ParseMediaSlot(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseMediaSlot("avatar")
	assert.False(t, ok)
}

func TestMediaAssets_SetKeepsOtherSlots(t *testing.T) {
	m := MediaAssets{Headshot: "h", Longshot: "l"}
	m.Set(SlotMidshot, "m")

	assert.Equal(t, "h", m.Get(SlotHeadshot))
	assert.Equal(t, "m", m.Get(SlotMidshot))
	assert.Equal(t, "l", m.Get(SlotLongshot))
	assert.Empty(t, m.Get(SlotIntroVideo))
}
