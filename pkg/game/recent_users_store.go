package game

import (
	"fmt"
	"log"

	"github.com/gonewx/avatarpanel/pkg/panel"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DefaultRecentUsersLimit 最近收藏用户的默认保留数量
const DefaultRecentUsersLimit = 100

// 存储路径常量
const (
	recentUsersObject   = "favourites"
	recentUsersProperty = "recent"
)

// recentUsersFile 持久化格式
type recentUsersFile struct {
	Users []recentUserRecord `yaml:"users"`
}

type recentUserRecord struct {
	ID        int64  `yaml:"id"`
	Username  string `yaml:"username"`
	AvatarURL string `yaml:"avatarUrl,omitempty"`
}

// RecentUsersStore 最近收藏用户列表
//
// 列表按最近收藏时间倒序（最新的在前），同一用户只出现一次，
// 超过 limit 的旧记录被丢弃。面板容量与这里的 limit 无关，
// 面板只取前 capacity 个，其余计入溢出数。
type RecentUsersStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	users        []panel.UserEntry
	limit        int
}

// NewRecentUsersStore 创建最近收藏用户存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//   - limit: 保留的最大用户数，<= 0 使用 DefaultRecentUsersLimit
//
// 加载失败不是致命错误，记录日志后以空列表开始。
func NewRecentUsersStore(gdataManager *gdata.Manager, limit int) *RecentUsersStore {
	if limit <= 0 {
		limit = DefaultRecentUsersLimit
	}
	s := &RecentUsersStore{
		gdataManager: gdataManager,
		limit:        limit,
	}
	if err := s.Load(); err != nil {
		log.Printf("[RecentUsersStore] Warning: Failed to load recent users: %v (starting empty)", err)
	}
	return s
}

// Load 从 gdata 加载列表
func (s *RecentUsersStore) Load() error {
	s.users = nil
	if s.gdataManager == nil || !s.gdataManager.ObjectPropExists(recentUsersObject, recentUsersProperty) {
		return nil
	}

	data, err := s.gdataManager.LoadObjectProp(recentUsersObject, recentUsersProperty)
	if err != nil {
		return fmt.Errorf("failed to load recent users: %w", err)
	}

	var file recentUsersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal recent users: %w", err)
	}

	for _, r := range file.Users {
		s.push(panel.UserEntry{ID: r.ID, Username: r.Username, AvatarURL: r.AvatarURL}, false)
	}
	log.Printf("[RecentUsersStore] Loaded %d recent users", len(s.users))
	return nil
}

// Save 保存列表到 gdata，gdataManager 为 nil 时直接返回
func (s *RecentUsersStore) Save() error {
	if s.gdataManager == nil {
		return nil
	}

	file := recentUsersFile{Users: make([]recentUserRecord, len(s.users))}
	for i, u := range s.users {
		file.Users[i] = recentUserRecord{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("failed to marshal recent users: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(recentUsersObject, recentUsersProperty, data); err != nil {
		return fmt.Errorf("failed to save recent users: %w", err)
	}
	return nil
}

// Add 记录一次收藏：用户移到最前面，并立即保存
func (s *RecentUsersStore) Add(user panel.UserEntry) error {
	s.push(user, true)
	return s.Save()
}

// Remove 移除用户
// 返回：用户是否存在
func (s *RecentUsersStore) Remove(id int64) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	s.users = append(s.users[:idx], s.users[idx+1:]...)
	return true, s.Save()
}

// Users 返回列表副本（最新的在前）
func (s *RecentUsersStore) Users() []panel.UserEntry {
	out := make([]panel.UserEntry, len(s.users))
	copy(out, s.users)
	return out
}

// Len 返回用户数
func (s *RecentUsersStore) Len() int {
	return len(s.users)
}

// Limit 返回保留的最大用户数
func (s *RecentUsersStore) Limit() int {
	return s.limit
}

// push 插入用户并去重、截断
// front 为 true 时插到最前（新收藏），否则追加到末尾（按文件顺序加载）
func (s *RecentUsersStore) push(user panel.UserEntry, front bool) {
	if idx := s.indexOf(user.ID); idx >= 0 {
		if !front {
			return
		}
		s.users = append(s.users[:idx], s.users[idx+1:]...)
	}

	if front {
		s.users = append([]panel.UserEntry{user}, s.users...)
	} else {
		s.users = append(s.users, user)
	}

	if len(s.users) > s.limit {
		s.users = s.users[:s.limit]
	}
}

func (s *RecentUsersStore) indexOf(id int64) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
