// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package places

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	apikeys "cloud.google.com/go/apikeys/apiv2"
	"cloud.google.com/go/apikeys/apiv2/apikeyspb"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
)

// APIKeyEnvVar is the environment variable checked before falling back to
// Application Default Credentials.
const APIKeyEnvVar = "GOOGLE_MAPS_API_KEY"

// ResolveAPIKey returns the Google Maps Platform key to use: an explicit
// value wins, then the environment, then a lookup of the named key via
// Application Default Credentials.
func ResolveAPIKey(ctx context.Context, explicit, keyDisplayName string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if key := os.Getenv(APIKeyEnvVar); key != "" {
		return key, nil
	}

	log.Printf("%s is not set, attempting to retrieve key %q via ADC", APIKeyEnvVar, keyDisplayName)

	key, err := apiKeyFromADC(ctx, keyDisplayName)
	if err != nil {
		return "", fmt.Errorf("resolving API key via ADC: %w", err)
	}

	return key, nil
}

func apiKeyFromADC(ctx context.Context, displayName string) (string, error) {
	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return "", fmt.Errorf("finding default credentials: %w", err)
	}

	projectID := creds.ProjectID
	if projectID == "" {
		return "", errors.New("no project id in default credentials")
	}

	client, err := apikeys.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("creating apikeys client: %w", err)
	}
	defer client.Close()

	req := &apikeyspb.ListKeysRequest{
		Parent: fmt.Sprintf("projects/%s/locations/global", projectID),
	}

	it := client.ListKeys(ctx, req)

	for {
		key, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}

		if err != nil {
			return "", fmt.Errorf("listing keys: %w", err)
		}

		if key.DisplayName != displayName {
			continue
		}

		// ListKeys redacts KeyString; GetKeyString retrieves the secret.
		getReq := &apikeyspb.GetKeyStringRequest{
			Name: key.Name,
		}

		resp, err := client.GetKeyString(ctx, getReq)
		if err != nil {
			return "", fmt.Errorf("getting key string: %w", err)
		}

		if resp.KeyString == "" {
			return "", fmt.Errorf("key %q found but KeyString is empty", displayName)
		}

		return resp.KeyString, nil
	}

	return "", fmt.Errorf("key with display name %q not found in project %s", displayName, projectID)
}
