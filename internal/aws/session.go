package aws

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/zgpcy/aws-cost-exporter/internal/clock"
	"github.com/zgpcy/aws-cost-exporter/internal/config"
	"github.com/zgpcy/aws-cost-exporter/internal/logger"
)

const (
	// roleSessionName identifies this exporter in CloudTrail entries for
	// the assumed role.
	roleSessionName = "aws-cost-exporter"

	// sessionExpiryMargin is how close to credential expiry a cached
	// session may get before the broker re-assumes the role.
	sessionExpiryMargin = 5 * time.Minute
)

// Session holds the temporary credentials obtained by assuming the
// billing account role, scoped to a region. Immutable once constructed.
type Session struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
	Expiration      time.Time
}

// Config returns an SDK configuration backed by the session's static
// credentials. The session is threaded explicitly into API clients; no
// process-global credential state is configured.
func (s Session) Config() aws.Config {
	return aws.Config{
		Region: s.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			s.AccessKeyID, s.SecretAccessKey, s.SessionToken),
	}
}

// assumeRoleAPI is the STS surface the broker needs (narrowed for testing)
type assumeRoleAPI interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// Broker assumes the configured cross-account role and hands out the
// resulting session. The first assumption happens at startup and is
// fatal on failure; after that the session is cached for its STS
// lifetime and re-assumed shortly before it expires, so a long-running
// exporter does not serve with stale credentials.
type Broker struct {
	sts     assumeRoleAPI
	roleArn string
	region  string
	logger  *logger.Logger
	clock   clock.Clock

	mu      sync.Mutex
	current *Session
}

// NewBroker builds a broker on the caller's ambient AWS credentials. The
// identity behind those credentials must be trusted by the target role.
func NewBroker(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Broker, error) {
	base, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &Broker{
		sts:     sts.NewFromConfig(base),
		roleArn: cfg.RoleArn,
		region:  cfg.Region,
		logger:  log,
		clock:   clock.RealClock{},
	}, nil
}

// Assume performs the role assumption and caches the resulting session.
func (b *Broker) Assume(ctx context.Context) (Session, error) {
	out, err := b.sts.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(b.roleArn),
		RoleSessionName: aws.String(roleSessionName),
	})
	if err != nil {
		return Session{}, fmt.Errorf("%w: role %s: %v", ErrAuthorization, b.roleArn, err)
	}

	creds := out.Credentials
	sess := Session{
		AccessKeyID:     aws.ToString(creds.AccessKeyId),
		SecretAccessKey: aws.ToString(creds.SecretAccessKey),
		SessionToken:    aws.ToString(creds.SessionToken),
		Region:          b.region,
	}
	if creds.Expiration != nil {
		sess.Expiration = *creds.Expiration
	}

	b.logger.Info("Assumed billing account role",
		"role_arn", b.roleArn,
		"region", b.region,
		"expires_at", sess.Expiration)

	b.mu.Lock()
	b.current = &sess
	b.mu.Unlock()

	return sess, nil
}

// Current returns the cached session, re-assuming the role when the
// cached credentials are expired or within the expiry margin. Sessions
// without a reported expiration are reused indefinitely.
func (b *Broker) Current(ctx context.Context) (Session, error) {
	b.mu.Lock()
	sess := b.current
	b.mu.Unlock()

	if sess != nil {
		if sess.Expiration.IsZero() || b.clock.Now().Before(sess.Expiration.Add(-sessionExpiryMargin)) {
			return *sess, nil
		}
		b.logger.Info("Session credentials near expiry, re-assuming role",
			"role_arn", b.roleArn,
			"expires_at", sess.Expiration)
	}

	return b.Assume(ctx)
}
