package service

import (
	"context"
	"fmt"
	"mariachi/config"
	"mariachi/infras/otel"
	"mariachi/internal/domains/user/model"
	"mariachi/internal/domains/user/model/dto"
	"mariachi/internal/domains/user/repository"
	"mariachi/shared"
	"mariachi/shared/cache"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	"mariachi/shared/failure"
	"mariachi/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"
)

// User manages staff and client accounts on behalf of an administrator. The
// last active administrator can never be removed, demoted or deactivated, and
// an administrator cannot do any of that to their own account.
type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.repo.Exist(ctx, repository.EmailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if email is registered")

		return fmt.Errorf("failed to check if email is registered: %w", err)
	}

	if exists {
		return failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(shared.UserFromContext(ctx), hashedPassword)); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)
	if s.cached(ctx, cacheKey, &res) {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	users, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(users, total, req.Limit)
	s.remember(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUser, req, filter)
	if s.cached(ctx, cacheKey, &res) {
		return res, nil
	}

	if res, err = s.repo.Count(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	s.remember(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)
	if s.cached(ctx, cacheKey, &res) {
		return res, nil
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)
	s.remember(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateUserRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	demoted := req.Role != constant.Empty && req.Role != constant.RoleAdmin
	deactivated := req.Active != nil && !*req.Active

	if user.Role == constant.RoleAdmin && user.Active && (demoted || deactivated) {
		if err = s.guardAdmin(ctx, id, "demote or deactivate"); err != nil {
			return err
		}
	}

	updatedFields := shared.TransformFields(req, shared.UserFromContext(ctx))
	if req.Active != nil {
		updatedFields[model.FieldActive] = *req.Active
	}

	if err = s.repo.Update(ctx, updatedFields, byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if id == shared.UserFromContext(ctx) {
		return failure.Forbidden("you cannot delete your own account") // nolint:wrapcheck
	}

	if user.Role == constant.RoleAdmin && user.Active {
		if err = s.guardAdmin(ctx, id, "delete"); err != nil {
			return err
		}
	}

	if err = s.repo.Delete(ctx, byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// guardAdmin refuses to take away an active administrator when it is the
// caller's own account or the last one left.
func (s *serviceImpl) guardAdmin(ctx context.Context, id, action string) error {
	if id == shared.UserFromContext(ctx) {
		return failure.Forbidden(fmt.Sprintf("you cannot %s your own administrator account", action)) // nolint:wrapcheck
	}

	admins, err := s.repo.Count(ctx, repository.ActiveAdminsFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to count administrators")

		return fmt.Errorf("failed to count administrators: %w", err)
	}

	if admins <= 1 {
		return failure.Conflict("at least one active administrator is required") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return user, nil
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) cached(ctx context.Context, key string, value any) bool {
	if err := s.cache.Get(ctx, key, value); err != nil {
		return false
	}

	log.Debug().Str("cacheKey", key).Msg("cache hit")

	return true
}

func (s *serviceImpl) remember(ctx context.Context, key string, value any) {
	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save users to cache")
		}
	}()
}

// invalidate drops the lists and counts, and the single record when id is set.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete user from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()
}
