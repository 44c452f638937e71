// Package redis persists the activity registry in Redis. Each activity keeps
// a hash for metadata, a list for roster order, and a set for membership; an
// index list preserves catalog insertion order. Mutations run as Lua scripts
// so the membership and capacity checks are atomic with the write.
package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"mergington/internal/activity/model"
	"mergington/pkg/platform/sentinel"
)

const orderKey = "activities:order"

func metaKey(name string) string    { return "activity:" + name }
func rosterKey(name string) string  { return "activity:" + name + ":roster" }
func membersKey(name string) string { return "activity:" + name + ":members" }

// KEYS: meta, roster, members; ARGV: email.
var addScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return "not_found"
end
if redis.call("SISMEMBER", KEYS[3], ARGV[1]) == 1 then
	return "conflict"
end
local max = tonumber(redis.call("HGET", KEYS[1], "max_participants"))
if redis.call("LLEN", KEYS[2]) >= max then
	return "capacity"
end
redis.call("SADD", KEYS[3], ARGV[1])
redis.call("RPUSH", KEYS[2], ARGV[1])
return "ok"
`)

// KEYS: meta, roster, members; ARGV: email.
var removeScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return "not_found"
end
if redis.call("SREM", KEYS[3], ARGV[1]) == 0 then
	return "not_member"
end
redis.call("LREM", KEYS[2], 1, ARGV[1])
return "ok"
`)

// KEYS: order, meta, roster, members; ARGV: name, description, schedule, max, emails...
var putScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[2]) == 0 then
	redis.call("RPUSH", KEYS[1], ARGV[1])
end
redis.call("HSET", KEYS[2], "description", ARGV[2], "schedule", ARGV[3], "max_participants", ARGV[4])
redis.call("DEL", KEYS[3], KEYS[4])
for i = 5, #ARGV do
	redis.call("RPUSH", KEYS[3], ARGV[i])
	redis.call("SADD", KEYS[4], ARGV[i])
end
return "ok"
`)

// Store implements store.Store on a Redis connection.
type Store struct {
	client redis.Cmdable
}

// New wraps a Redis client (or cluster/pipeline-compatible equivalent).
func New(client redis.Cmdable) *Store {
	return &Store{client: client}
}

func (s *Store) List(ctx context.Context) ([]model.Activity, error) {
	names, err := s.client.LRange(ctx, orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list activity order: %w", err)
	}
	out := make([]model.Activity, 0, len(names))
	for _, name := range names {
		a, err := s.Find(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("load activity %q: %w", name, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) Find(ctx context.Context, name string) (model.Activity, error) {
	meta, err := s.client.HGetAll(ctx, metaKey(name)).Result()
	if err != nil {
		return model.Activity{}, fmt.Errorf("load activity meta: %w", err)
	}
	if len(meta) == 0 {
		return model.Activity{}, sentinel.ErrNotFound
	}
	max, err := strconv.Atoi(meta["max_participants"])
	if err != nil {
		return model.Activity{}, fmt.Errorf("parse max_participants: %w", err)
	}
	roster, err := s.client.LRange(ctx, rosterKey(name), 0, -1).Result()
	if err != nil {
		return model.Activity{}, fmt.Errorf("load roster: %w", err)
	}
	return model.Activity{
		Name:            name,
		Description:     meta["description"],
		Schedule:        meta["schedule"],
		MaxParticipants: max,
		Participants:    roster,
	}, nil
}

func (s *Store) Put(ctx context.Context, activity model.Activity) error {
	argv := make([]interface{}, 0, 4+len(activity.Participants))
	argv = append(argv,
		activity.Name,
		activity.Description,
		activity.Schedule,
		strconv.Itoa(activity.MaxParticipants),
	)
	for _, email := range activity.Participants {
		argv = append(argv, email)
	}
	keys := []string{orderKey, metaKey(activity.Name), rosterKey(activity.Name), membersKey(activity.Name)}
	if err := putScript.Run(ctx, s.client, keys, argv...).Err(); err != nil {
		return fmt.Errorf("put activity: %w", err)
	}
	return nil
}

func (s *Store) AddParticipant(ctx context.Context, name, email string) error {
	keys := []string{metaKey(name), rosterKey(name), membersKey(name)}
	res, err := addScript.Run(ctx, s.client, keys, email).Text()
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	switch res {
	case "ok":
		return nil
	case "not_found":
		return sentinel.ErrNotFound
	case "conflict":
		return sentinel.ErrConflict
	case "capacity":
		return sentinel.ErrCapacity
	default:
		return fmt.Errorf("add participant: unexpected script result %q", res)
	}
}

func (s *Store) RemoveParticipant(ctx context.Context, name, email string) error {
	keys := []string{metaKey(name), rosterKey(name), membersKey(name)}
	res, err := removeScript.Run(ctx, s.client, keys, email).Text()
	if err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	switch res {
	case "ok":
		return nil
	case "not_found":
		return sentinel.ErrNotFound
	case "not_member":
		return sentinel.ErrNotMember
	default:
		return fmt.Errorf("remove participant: unexpected script result %q", res)
	}
}
