package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sceneWith(bubbles ...Bubble) *Scene {
	s := NewScene()
	for _, b := range bubbles {
		s.Add(b)
	}
	return s
}

func TestSceneUpdateUnknownIDIsNoOp(t *testing.T) {
	a := NewBubble(BubbleSpeech)
	b := NewBubble(BubbleBox)
	s := sceneWith(a, b)
	before := s.Snapshot()

	s.Update("does-not-exist", Patch{FontSize: ptr(40.0), X: ptr(1.0)})

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, before, s.Snapshot())
}

func TestSceneUpdateMerges(t *testing.T) {
	a := NewBubble(BubbleSpeech)
	s := sceneWith(a)

	s.Update(a.ID, Patch{Text: ptr("Hello"), FontSize: ptr(20.0)})

	got, ok := s.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, "Hello", got.Text)
	assert.Equal(t, 20.0, *got.FontSize)
	assert.Equal(t, a.Width, got.Width)
	assert.Equal(t, *a.Padding, *got.Padding)
}

func TestSceneGetReturnsCopy(t *testing.T) {
	a := NewBubble(BubbleSpeech)
	s := sceneWith(a)

	got, _ := s.Get(a.ID)
	*got.Padding = 99
	got.X = 500

	again, _ := s.Get(a.ID)
	assert.Equal(t, 16.0, *again.Padding)
	assert.Equal(t, float64(spawnX), again.X)
}

func TestSceneRemoveAndInsert(t *testing.T) {
	a, b, c := NewBubble(BubbleSpeech), NewBubble(BubbleBox), NewBubble(BubbleFlash)
	s := sceneWith(a, b, c)

	removed, idx, ok := s.Remove(b.ID)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, b.ID, removed.ID)
	assert.Equal(t, 2, s.Len())

	_, _, ok = s.Remove(b.ID)
	assert.False(t, ok)

	s.Insert(idx, removed)
	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{snap[0].ID, snap[1].ID, snap[2].ID})
}

func TestScenePaintOrderPutsSelectedLast(t *testing.T) {
	a, b, c := NewBubble(BubbleSpeech), NewBubble(BubbleBox), NewBubble(BubbleFlash)
	s := sceneWith(a, b, c)

	order := s.PaintOrder(a.ID)
	require.Len(t, order, 3)
	assert.Equal(t, []string{b.ID, c.ID, a.ID}, []string{order[0].ID, order[1].ID, order[2].ID})

	order = s.PaintOrder("")
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{order[0].ID, order[1].ID, order[2].ID})
}

func TestSceneBubbleAt(t *testing.T) {
	a := NewBubble(BubbleSpeech) // 50,50 150x100
	b := NewBubble(BubbleSpeech)
	b.X, b.Y = 100, 100
	s := sceneWith(a, b)

	assert.Equal(t, b.ID, s.BubbleAt(120, 120, ""), "later bubble is on top")
	assert.Equal(t, a.ID, s.BubbleAt(120, 120, a.ID), "selected bubble is on top")
	assert.Equal(t, a.ID, s.BubbleAt(60, 60, ""))
	assert.Equal(t, "", s.BubbleAt(10, 10, ""))
}
