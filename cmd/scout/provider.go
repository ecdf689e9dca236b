package main

import (
	"context"

	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/gemini"
	"go.uber.org/zap"
)

// resolveProvider constructs the Gemini provider. When the client cannot be
// built (most often a missing key) it returns a provider that fails every
// NewChat with that error, so the session surfaces it as its startup banner
// instead of the program exiting before the UI appears.
func resolveProvider(ctx context.Context, apiKey string, logger *zap.Logger) scout.Provider {
	client, err := gemini.New(ctx, apiKey)
	if err != nil {
		logger.Error("create gemini client", zap.Error(err))
		return scout.ProviderFunc(func(context.Context, scout.ChatConfig) (scout.Chat, error) {
			return nil, err
		})
	}
	return client
}
