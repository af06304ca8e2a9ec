package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"pharmacore/internal/models"
)

type CacheService interface {
	// Medicine caching
	GetMedicine(ctx context.Context, medicineID int64) (*models.Medicine, error)
	SetMedicine(ctx context.Context, medicine *models.Medicine, ttl time.Duration) error
	DeleteMedicine(ctx context.Context, medicineID int64) error

	// Report caching
	GetReport(ctx context.Context, name string, dest any) (bool, error)
	SetReport(ctx context.Context, name string, payload any, ttl time.Duration) error
	InvalidateReports(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, addr)
	}

	return &redisCacheService{client: client}
}

func medicineKey(medicineID int64) string {
	return fmt.Sprintf("pharmacore:medicine:%d", medicineID)
}

func reportKey(name string) string {
	return fmt.Sprintf("pharmacore:report:%s", name)
}

func (r *redisCacheService) GetMedicine(ctx context.Context, medicineID int64) (*models.Medicine, error) {
	data, err := r.client.Get(ctx, medicineKey(medicineID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var medicine models.Medicine
	if err := json.Unmarshal(data, &medicine); err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (r *redisCacheService) SetMedicine(ctx context.Context, medicine *models.Medicine, ttl time.Duration) error {
	data, err := json.Marshal(medicine)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, medicineKey(medicine.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteMedicine(ctx context.Context, medicineID int64) error {
	return r.client.Del(ctx, medicineKey(medicineID)).Err()
}

func (r *redisCacheService) GetReport(ctx context.Context, name string, dest any) (bool, error) {
	data, err := r.client.Get(ctx, reportKey(name)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) SetReport(ctx context.Context, name string, payload any, ttl time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, reportKey(name), data, ttl).Err()
}

func (r *redisCacheService) InvalidateReports(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, "pharmacore:report:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
