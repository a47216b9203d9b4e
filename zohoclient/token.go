package zohoclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"bitbucket.org/mmdatafocus/zohobooks/config"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	tokenPath    = "/oauth/v2/token"
	DefaultScope = "ZohoBooks.fullaccess.all"

	tokenLockTTL     = 10 * time.Second
	tokenEarlyExpiry = time.Minute
)

// oauthConfig is the client credentials grant of the Zoho accounts server.
// The soid parameter binds the token to the organization's Books service.
func oauthConfig(cfg config.ZohoConfig, scopes []string) *clientcredentials.Config {
	if len(scopes) == 0 {
		scopes = []string{DefaultScope}
	}
	return &clientcredentials.Config{
		ClientID:     cfg.Client.Id,
		ClientSecret: cfg.Client.Secret,
		TokenURL:     cfg.AccountsURL + tokenPath,
		Scopes:       scopes,
		EndpointParams: url.Values{
			"soid": {"ZohoBooks." + cfg.OrgId},
		},
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

// RedisTokenSource shares one access token between processes through Redis.
// A fetch from the accounts server is serialized with a redis lock; when the
// lock cannot be obtained the token is fetched anyway.
type RedisTokenSource struct {
	rdb    *redis.Client
	locker *redislock.Client
	key    string
	base   oauth2.TokenSource
	logger *logrus.Logger
}

func NewRedisTokenSource(rdb *redis.Client, locker *redislock.Client, orgId string, base oauth2.TokenSource) *RedisTokenSource {
	return &RedisTokenSource{
		rdb:    rdb,
		locker: locker,
		key:    fmt.Sprintf("zohobooks:token:%s", orgId),
		base:   base,
		logger: config.GetLogger(),
	}
}

func (s *RedisTokenSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if tok, ok := s.cached(ctx); ok {
		return tok, nil
	}

	lock, err := s.locker.Obtain(ctx, s.key+":lock", tokenLockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 50),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		s.logger.WithFields(logrus.Fields{
			"field": "RedisTokenSource",
			"key":   s.key,
		}).Warn("could not obtain token lock; fetching without lock")
		lock = nil
	} else if err != nil {
		config.LogError(s.logger, "zohoclient", "RedisTokenSource.Token", "Error obtaining token lock", s.key, err)
		lock = nil
	}
	defer func() {
		if lock != nil {
			_ = lock.Release(ctx)
		}
	}()

	// another process may have refreshed while we waited for the lock
	if lock != nil {
		if tok, ok := s.cached(ctx); ok {
			return tok, nil
		}
	}

	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	s.store(ctx, tok)
	return tok, nil
}

func (s *RedisTokenSource) cached(ctx context.Context) (*oauth2.Token, bool) {
	b, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			config.LogError(s.logger, "zohoclient", "RedisTokenSource.cached", "Error reading cached token", s.key, err)
		}
		return nil, false
	}
	var tok oauth2.Token
	if err := json.Unmarshal(b, &tok); err != nil {
		config.LogError(s.logger, "zohoclient", "RedisTokenSource.cached", "Error decoding cached token", s.key, err)
		return nil, false
	}
	if !tok.Valid() {
		return nil, false
	}
	return &tok, true
}

func (s *RedisTokenSource) store(ctx context.Context, tok *oauth2.Token) {
	ttl := time.Until(tok.Expiry) - tokenEarlyExpiry
	if tok.Expiry.IsZero() || ttl <= 0 {
		return
	}
	b, err := json.Marshal(tok)
	if err != nil {
		config.LogError(s.logger, "zohoclient", "RedisTokenSource.store", "Error encoding token", s.key, err)
		return
	}
	if err := s.rdb.Set(ctx, s.key, b, ttl).Err(); err != nil {
		config.LogError(s.logger, "zohoclient", "RedisTokenSource.store", "Error caching token", s.key, err)
	}
}
