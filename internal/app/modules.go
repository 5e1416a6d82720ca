package app

import (
	"github.com/vk/restifygo/internal/registry"
	"github.com/vk/restifygo/internal/store"
	"github.com/vk/restifygo/repositories/actionlog"
	"github.com/vk/restifygo/repositories/posts"
	"github.com/vk/restifygo/repositories/users"
)

// coreModules is the definitive list of repository modules compiled into
// the binary, bound to the application's store.
func coreModules(st store.Store) []registry.Module {
	return []registry.Module{
		&posts.Module{Store: st},
		&users.Module{Store: st},
		&actionlog.Module{Store: st},
	}
}
