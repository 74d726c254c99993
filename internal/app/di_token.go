package app

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/allisson/containertoken/internal/token/service"
	tokenUseCase "github.com/allisson/containertoken/internal/token/usecase"
)

// KMSService returns the KMS service instance.
func (c *Container) KMSService() service.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = service.NewKMSService()
	})
	return c.kmsService
}

// KeyStore returns the master key store instance.
func (c *Container) KeyStore() (*service.KeyStore, error) {
	c.keyStoreInit.Do(func() {
		keyStore, err := c.initKeyStore()
		if err != nil {
			c.initErrors["keyStore"] = err
			return
		}
		c.keyStore = keyStore
	})
	if storedErr, exists := c.initErrors["keyStore"]; exists {
		return nil, storedErr
	}
	return c.keyStore, nil
}

// SecretManager returns the secret manager instance.
func (c *Container) SecretManager() (service.SecretManager, error) {
	c.secretManagerInit.Do(func() {
		keyStore, err := c.KeyStore()
		if err != nil {
			c.initErrors["secretManager"] = err
			return
		}
		c.secretManager = service.NewSecretManager(keyStore)
	})
	if storedErr, exists := c.initErrors["secretManager"]; exists {
		return nil, storedErr
	}
	return c.secretManager, nil
}

// TokenUseCase returns the token use case instance, decorated with metrics.
func (c *Container) TokenUseCase() (tokenUseCase.TokenUseCase, error) {
	c.tokenUCInit.Do(func() {
		manager, err := c.SecretManager()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
			return
		}

		keyStore, err := c.KeyStore()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
			return
		}

		useCase := tokenUseCase.NewTokenUseCase(manager, keyStore, c.config.TokenTTL)
		c.tokenUC = tokenUseCase.NewTokenUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUC, nil
}

// Rotator returns the background key rotator, or nil when time-driven
// rotation is disabled.
func (c *Container) Rotator() (*service.Rotator, error) {
	c.rotatorInit.Do(func() {
		if c.config.KeyRotationInterval <= 0 {
			return
		}

		useCase, err := c.TokenUseCase()
		if err != nil {
			c.initErrors["rotator"] = err
			return
		}

		c.rotator = service.NewRotator(useCase, c.config.KeyRotationInterval, c.Logger())
	})
	if storedErr, exists := c.initErrors["rotator"]; exists {
		return nil, storedErr
	}
	return c.rotator, nil
}

// initKeyStore builds the key store from configuration. The seed may be
// plain base64 or, when a KMS key URI is configured, base64 of KMS-wrapped
// ciphertext that is unwrapped at startup.
func (c *Container) initKeyStore() (*service.KeyStore, error) {
	var seed []byte

	if c.config.MasterKeySeed != "" {
		raw, err := base64.StdEncoding.DecodeString(c.config.MasterKeySeed)
		if err != nil {
			return nil, fmt.Errorf("failed to decode master key seed: %w", err)
		}

		if c.config.KMSKeyURI != "" {
			ctx := context.Background()
			keeper, err := c.KMSService().OpenKeeper(ctx, c.config.KMSKeyURI)
			if err != nil {
				return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
			}
			c.kmsKeeper = keeper

			seed, err = keeper.Decrypt(ctx, raw)
			if err != nil {
				return nil, fmt.Errorf("failed to unwrap master key seed: %w", err)
			}
		} else {
			seed = raw
		}
	}

	return service.NewKeyStore(c.config.KeyRetentionWindow, seed)
}
