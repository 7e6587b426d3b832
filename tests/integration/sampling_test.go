package integration

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/erik893/video-frame-extractor/internal/domain/entity"
	"github.com/erik893/video-frame-extractor/internal/infra/ffmpeg"
	miniostorage "github.com/erik893/video-frame-extractor/internal/infra/minio"
	"github.com/erik893/video-frame-extractor/internal/infra/postgres"
	"github.com/erik893/video-frame-extractor/internal/usecase"
	"github.com/erik893/video-frame-extractor/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func requireTooling(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}
	testVideoPath := filepath.Join("..", "testdata", "test.mp4")
	if _, err := os.Stat(testVideoPath); os.IsNotExist(err) {
		t.Skip("test video not found at tests/testdata/test.mp4 - generate it with: ffmpeg -f lavfi -i testsrc=duration=10:size=320x240:rate=25 -c:v libx264 -pix_fmt yuv420p tests/testdata/test.mp4")
	}
	return testVideoPath
}

func TestExtractAndStoreEndToEnd(t *testing.T) {
	testVideoPath := requireTooling(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Start PostgreSQL container
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("runs"),
		tcpostgres.WithUsername("run_user"),
		tcpostgres.WithPassword("run_pass"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	defer pgContainer.Terminate(ctx)

	pgConnStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Start MinIO container
	minioContainer, err := tcminio.Run(ctx,
		"minio/minio:latest",
		tcminio.WithUsername("minioadmin"),
		tcminio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)
	defer minioContainer.Terminate(ctx)

	minioEndpoint, err := minioContainer.ConnectionString(ctx)
	require.NoError(t, err)

	// Run migrations
	err = postgres.RunMigrations(pgConnStr, "../../migrations")
	require.NoError(t, err)

	// Storage adapter with the refreshing credential provider
	credProvider := miniostorage.NewRefreshingProvider(
		miniostorage.StaticFetch("minioadmin", "minioadmin"),
		time.Hour,
	)
	storage, err := miniostorage.NewStorage(miniostorage.StorageConfig{
		Endpoint: minioEndpoint,
		UseSSL:   false,
		Bucket:   "media",
	}, credProvider.NewCredentials())
	require.NoError(t, err)
	require.NoError(t, storage.EnsureBucket(ctx))

	// Upload test video
	minioClient, err := miniogo.New(minioEndpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err)

	videoKey := "library/test.mp4"
	_, err = minioClient.FPutObject(ctx, "media", videoKey, testVideoPath, miniogo.PutObjectOptions{
		ContentType: "video/mp4",
	})
	require.NoError(t, err)

	// Pipeline wiring
	pool, err := pgxpool.New(ctx, pgConnStr)
	require.NoError(t, err)
	defer pool.Close()

	log, _ := logger.New("debug")
	repo := postgres.NewRunRepository(pool)
	prober := ffmpeg.NewProber(30 * time.Second)
	renderer := ffmpeg.NewRenderer("jpg", 30*time.Second, log)
	resolver, err := usecase.NewDestinationResolver(usecase.DestinationSubfolder, "frames", storage)
	require.NoError(t, err)

	uc := usecase.NewExtractFramesUseCase(
		storage, prober, renderer, resolver,
		repo, nil, nil,
		log,
		usecase.ExtractFramesConfig{TempDir: t.TempDir()},
	)

	result, err := uc.Execute(ctx, videoKey, usecase.ExtractOptions{
		Sample: entity.SampleConfig{FrameCount: 5, MinGapSec: 1, MaxWidth: 320},
	})
	require.NoError(t, err)

	assert.Equal(t, videoKey, result.FileID)
	assert.Equal(t, 5, result.RequestedFrames)
	assert.InDelta(t, 10.0, result.DurationSeconds, 1.0)
	assert.NotEmpty(t, result.StoredFrameIDs)
	assert.True(t, strings.HasPrefix(result.DestinationFolder, "frames/test_"))

	// Every reported frame id is retrievable
	for _, id := range result.StoredFrameIDs {
		obj, err := minioClient.StatObject(ctx, "media", id, miniogo.StatObjectOptions{})
		require.NoError(t, err)
		assert.Greater(t, obj.Size, int64(0))
	}

	// Run record reflects the outcome
	var dbStatus string
	var storedFrames int
	err = pool.QueryRow(ctx,
		"SELECT status, stored_frames FROM sampling_runs WHERE file_id=$1", videoKey,
	).Scan(&dbStatus, &storedFrames)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", dbStatus)
	assert.Equal(t, len(result.StoredFrameIDs), storedFrames)

	t.Logf("Test passed: %d frames stored under %s", len(result.StoredFrameIDs), result.DestinationFolder)
}

func TestBatchFailureIsolationEndToEnd(t *testing.T) {
	testVideoPath := requireTooling(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	minioContainer, err := tcminio.Run(ctx,
		"minio/minio:latest",
		tcminio.WithUsername("minioadmin"),
		tcminio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)
	defer minioContainer.Terminate(ctx)

	minioEndpoint, err := minioContainer.ConnectionString(ctx)
	require.NoError(t, err)

	credProvider := miniostorage.NewRefreshingProvider(
		miniostorage.StaticFetch("minioadmin", "minioadmin"),
		time.Hour,
	)
	storage, err := miniostorage.NewStorage(miniostorage.StorageConfig{
		Endpoint: minioEndpoint,
		UseSSL:   false,
		Bucket:   "media",
	}, credProvider.NewCredentials())
	require.NoError(t, err)
	require.NoError(t, storage.EnsureBucket(ctx))

	minioClient, err := miniogo.New(minioEndpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err)

	goodKeys := []string{"library/a.mp4", "library/b.mp4"}
	for _, key := range goodKeys {
		_, err = minioClient.FPutObject(ctx, "media", key, testVideoPath, miniogo.PutObjectOptions{
			ContentType: "video/mp4",
		})
		require.NoError(t, err)
	}

	log, _ := logger.New("debug")
	prober := ffmpeg.NewProber(30 * time.Second)
	renderer := ffmpeg.NewRenderer("jpg", 30*time.Second, log)
	resolver, err := usecase.NewDestinationResolver(usecase.DestinationFixed, "frames", storage)
	require.NoError(t, err)

	uc := usecase.NewExtractFramesUseCase(
		storage, prober, renderer, resolver,
		nil, nil, nil,
		log,
		usecase.ExtractFramesConfig{TempDir: t.TempDir()},
	)
	batch := usecase.NewBatchExtractUseCase(uc.Execute, log)

	outcome := batch.Execute(ctx, append(goodKeys, "library/missing.mp4"), 3, usecase.ExtractOptions{
		Sample: entity.SampleConfig{FrameCount: 3, MinGapSec: 1, MaxWidth: 320},
	})

	assert.Equal(t, 3, outcome.RequestedCount)
	assert.Equal(t, 3, outcome.ProcessedCount)
	assert.Len(t, outcome.Successes, 2)
	require.Len(t, outcome.Failures, 1)
	assert.Equal(t, "library/missing.mp4", outcome.Failures[0].FileID)
}
