// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides key, token, and slug generation utilities.

# Host Keys

Host keys use HMAC-SHA256 to create deterministic, verifiable keys:

	hostKey := auth.GenerateHostKey(eventID, salt)
	err := auth.ValidateHostKey(eventID, hostKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same event ID and salt always produce the same key. This allows validation
without storing the key in the database.

# Voter Tokens

Voter tokens identify a browser, not a person:

	token := auth.NewVoterToken()

A token is a random v4 UUID issued once per browser via a long-lived
cookie. It keys votes and question ownership; it is an anti-double-voting
device, not an authentication credential.

# Share Slugs

Share slugs create URL-friendly identifiers for events:

	slug := auth.GenerateShareSlug(eventID, salt)

Slugs are base62 encoded (alphanumeric only) for easy sharing. Like host
keys, they're deterministic from the event ID and salt.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving abuse triage on question submissions:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
