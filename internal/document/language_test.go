package document_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"snipref/internal/document"
)

func TestDetectLanguages_TaggedSegmentUntouched(t *testing.T) {
	t.Parallel()

	segments := []document.Segment{
		{Kind: document.KindCode, Lang: "js", Content: "package main\n"},
	}

	document.DetectLanguages(segments)

	assert.Equal(t, "js", segments[0].Lang)
	assert.Empty(t, segments[0].DetectedLang)
}

func TestDetectLanguages_SkipsProseAndEmpty(t *testing.T) {
	t.Parallel()

	segments := []document.Segment{
		{Kind: document.KindProse, Content: "#!/bin/sh\n"},
		{Kind: document.KindCode, Content: "   \n"},
	}

	document.DetectLanguages(segments)

	assert.Empty(t, segments[0].DetectedLang)
	assert.Empty(t, segments[1].DetectedLang)
}

func TestDetectLanguages_UntaggedIsLowercaseOrEmpty(t *testing.T) {
	t.Parallel()

	segments := []document.Segment{
		{Kind: document.KindCode, Content: "#!/usr/bin/env python\nprint(1)\n"},
	}

	document.DetectLanguages(segments)

	detected := segments[0].DetectedLang
	assert.Equal(t, strings.ToLower(detected), detected)
}

func TestEffectiveLang(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "go", document.EffectiveLang(document.Segment{Lang: "go", DetectedLang: "python"}))
	assert.Equal(t, "python", document.EffectiveLang(document.Segment{DetectedLang: "python"}))
	assert.Empty(t, document.EffectiveLang(document.Segment{}))
}
