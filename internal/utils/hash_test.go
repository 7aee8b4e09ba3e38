// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testHashKey = "test-secret-key"

func expectedHMAC(key string, data []byte) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestHash_MatchesHMAC(t *testing.T) {
	InitHasherPool(testHashKey)
	body := []byte(`{"vaultId":"v1","deviceId":"mac","files":[]}`)

	got := hex.EncodeToString(Hash(body))
	assert.Equal(t, expectedHMAC(testHashKey, body), got)
	assert.Equal(t, got, hex.EncodeToString(Hash(body)), "pooled hasher must be reset between calls")
}

func TestHash_DifferentKeys(t *testing.T) {
	body := []byte("# note")

	InitHasherPool("key-one")
	first := hex.EncodeToString(Hash(body))

	InitHasherPool("key-two")
	second := hex.EncodeToString(Hash(body))

	assert.NotEqual(t, first, second)
}

func TestHashString(t *testing.T) {
	body := []byte("# note")
	assert.Equal(t, expectedHMAC(testHashKey, body), HashString(body, testHashKey))
	assert.NotEqual(t, HashString(body, testHashKey), HashString([]byte("# other"), testHashKey))
}

func TestEqualHash(t *testing.T) {
	assert.True(t, EqualHash("abc", "abc"))
	assert.False(t, EqualHash("abc", "abd"))
	assert.False(t, EqualHash("abc", ""))
}
