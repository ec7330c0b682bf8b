package memory

import (
	"context"
	"sort"
	"sync"

	"taskmail/internal/model"
	"taskmail/internal/repository"
)

type InMemoryEmailRepository struct {
	emails map[string]*model.Email
	mutex  sync.RWMutex
}

func NewInMemoryEmailRepository() *InMemoryEmailRepository {
	return &InMemoryEmailRepository{
		emails: make(map[string]*model.Email),
	}
}

func (r *InMemoryEmailRepository) Create(ctx context.Context, email *model.Email) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.emails[email.ID] = email
	return nil
}

func (r *InMemoryEmailRepository) FindByID(ctx context.Context, id string) (*model.Email, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	email, exists := r.emails[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return email, nil
}

func (r *InMemoryEmailRepository) FindByMessageID(ctx context.Context, ownerID, messageID string) (*model.Email, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, email := range r.emails {
		if email.OwnerID == ownerID && email.MessageID == messageID {
			return email, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *InMemoryEmailRepository) FindBySignature(ctx context.Context, ownerID, signature string) (*model.Email, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, email := range r.emails {
		if email.OwnerID == ownerID && email.Signature == signature {
			return email, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *InMemoryEmailRepository) FindRecent(ctx context.Context, ownerID string, limit int) ([]*model.Email, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.Email
	for _, email := range r.emails {
		if email.OwnerID == ownerID {
			result = append(result, email)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *InMemoryEmailRepository) FindSpam(ctx context.Context, ownerID string) ([]*model.Email, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.Email
	for _, email := range r.emails {
		if email.OwnerID == ownerID && email.IsSpam {
			result = append(result, email)
		}
	}
	return result, nil
}

func (r *InMemoryEmailRepository) Update(ctx context.Context, email *model.Email) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.emails[email.ID]
	if !exists {
		return repository.ErrNotFound
	}
	r.emails[email.ID] = email
	return nil
}

// Task repository implementation
type InMemoryTaskRepository struct {
	tasks map[string]*model.Task
	mutex sync.RWMutex
}

func NewInMemoryTaskRepository() *InMemoryTaskRepository {
	return &InMemoryTaskRepository{
		tasks: make(map[string]*model.Task),
	}
}

func (r *InMemoryTaskRepository) Create(ctx context.Context, task *model.Task) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.tasks[task.ID] = task
	return nil
}

func (r *InMemoryTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	task, exists := r.tasks[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return task, nil
}

func (r *InMemoryTaskRepository) FindByEmailID(ctx context.Context, emailID string) (*model.Task, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, task := range r.tasks {
		if task.EmailID == emailID {
			return task, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *InMemoryTaskRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]*model.Task, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*model.Task
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			result = append(result, task)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *InMemoryTaskRepository) Update(ctx context.Context, task *model.Task) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.tasks[task.ID]
	if !exists {
		return repository.ErrNotFound
	}
	r.tasks[task.ID] = task
	return nil
}

// Webhook config repository implementation
type InMemoryWebhookConfigRepository struct {
	configs map[string]*model.WebhookSecurityConfig
	mutex   sync.RWMutex
}

func NewInMemoryWebhookConfigRepository() *InMemoryWebhookConfigRepository {
	return &InMemoryWebhookConfigRepository{
		configs: make(map[string]*model.WebhookSecurityConfig),
	}
}

func (r *InMemoryWebhookConfigRepository) FindActive(ctx context.Context) (*model.WebhookSecurityConfig, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var newest *model.WebhookSecurityConfig
	for _, config := range r.configs {
		if !config.Active {
			continue
		}
		if newest == nil || config.CreatedAt.After(newest.CreatedAt) {
			newest = config
		}
	}
	if newest == nil {
		return nil, repository.ErrNotFound
	}
	return newest, nil
}

func (r *InMemoryWebhookConfigRepository) FindActiveByAPIKey(ctx context.Context, apiKey string) (*model.WebhookSecurityConfig, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, config := range r.configs {
		if config.Active && config.APIKey == apiKey {
			return config, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *InMemoryWebhookConfigRepository) Save(ctx context.Context, config *model.WebhookSecurityConfig) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.configs[config.ID] = config
	return nil
}
