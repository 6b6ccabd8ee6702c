package gamesave

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 is an in-memory S3API that pages two keys at a time.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = data
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bucket := aws.ToString(in.Bucket) + "/"
	var keys []string
	for k := range f.objects {
		if key := strings.TrimPrefix(k, bucket); key != k && strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	start := 0
	if in.ContinuationToken != nil {
		for i, k := range keys {
			if k == *in.ContinuationToken {
				start = i
			}
		}
	}
	end := start + 2
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	if end < len(keys) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(keys[end])
	} else {
		end = len(keys)
	}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func TestS3StorePutGet(t *testing.T) {
	fake := newFakeS3()
	store := NewS3Store(fake, "gm-saves", "library/")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "Kael_1.json", []byte(`{"game":"x"}`)))
	assert.Equal(t, "application/json", fake.types["gm-saves/library/Kael_1.json"])

	data, err := store.Get(ctx, "Kael_1.json")
	require.NoError(t, err)
	assert.Equal(t, `{"game":"x"}`, string(data))

	_, err = store.Get(ctx, "Missing.json")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Put(ctx, "a/b.json", nil), ErrInvalidName)
}

func TestS3StoreListPages(t *testing.T) {
	fake := newFakeS3()
	store := NewS3Store(fake, "gm-saves", "library/")
	other := NewS3Store(fake, "gm-saves", "elsewhere/")
	ctx := context.Background()

	for _, name := range []string{"e.json", "c.json", "a.json", "d.json", "b.json"} {
		require.NoError(t, store.Put(ctx, name, []byte("{}")))
	}
	require.NoError(t, other.Put(ctx, "z.json", []byte("{}")))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json", "c.json", "d.json", "e.json"}, names)
}

func TestS3StoreWithMaster(t *testing.T) {
	fake := newFakeS3()
	gm := NewMaster(NewS3Store(fake, "gm-saves", ""), WithClock(func() time.Time { return fixedTime }))
	ctx := context.Background()

	res, err := gm.Save(ctx, sampleHistory())
	require.NoError(t, err)

	rec, err := gm.Load(ctx, res.Name)
	require.NoError(t, err)
	assert.Equal(t, res.Record.PlayerName, rec.PlayerName)

	fake.putErr = errors.New("access denied")
	_, err = gm.Save(ctx, sampleHistory())
	assert.ErrorContains(t, err, "access denied")
}

// isolateAWSEnv points the SDK's default chain at nothing but the
// variables set by the test.
func isolateAWSEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	t.Setenv("AWS_SESSION_TOKEN", "")
}

func TestNewS3Client(t *testing.T) {
	isolateAWSEnv(t)
	t.Setenv("AWS_ACCESS_KEY_ID", "env-id")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "env-secret")
	ctx := context.Background()

	client, err := NewS3Client(ctx, S3Config{Endpoint: "http://localhost:9000", UsePathStyle: true})
	require.NoError(t, err)
	opts := client.Options()
	assert.Equal(t, DefaultS3Region, opts.Region)
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, "http://localhost:9000", aws.ToString(opts.BaseEndpoint))

	creds, err := opts.Credentials.Retrieve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "env-id", creds.AccessKeyID)
	assert.Equal(t, "env-secret", creds.SecretAccessKey)
}

func TestNewS3ClientRegion(t *testing.T) {
	isolateAWSEnv(t)
	ctx := context.Background()

	t.Setenv("AWS_REGION", "ap-south-1")
	client, err := NewS3Client(ctx, S3Config{})
	require.NoError(t, err)
	assert.Equal(t, "ap-south-1", client.Options().Region)

	client, err = NewS3Client(ctx, S3Config{Region: "eu-west-1"})
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", client.Options().Region, "explicit region wins over the environment")
	assert.Nil(t, client.Options().BaseEndpoint)
}

func TestNewS3ClientCredentials(t *testing.T) {
	isolateAWSEnv(t)
	ctx := context.Background()

	static := config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("opt-id", "opt-secret", ""))
	client, err := NewS3Client(ctx, S3Config{}, static)
	require.NoError(t, err)
	creds, err := client.Options().Credentials.Retrieve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "opt-id", creds.AccessKeyID)

	// Anonymous access is opt-in only.
	_, isAnon := client.Options().Credentials.(aws.AnonymousCredentials)
	assert.False(t, isAnon)

	client, err = NewS3Client(ctx, S3Config{Anonymous: true}, static)
	require.NoError(t, err)
	assert.IsType(t, aws.AnonymousCredentials{}, client.Options().Credentials)
}
