package storage

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	"go.uber.org/zap"

	"literature-client/internal/config"
	"literature-client/pkg/protocol"
)

const identityFileName = "identity.json"

// maxUserToken bounds generated tokens to the range the original
// login flow used.
const maxUserToken = 1_000_000_000

type LocalStorage struct {
	identity identityStorage

	localPath string
	folder    *configdir.Config
	mutex     *sync.RWMutex
}

type identityStorage struct {
	Token protocol.PlayerID `json:"token"`
	Name  string            `json:"name"`
}

// NewLocalStorage stores identity under localPath, or under the user
// config directory when localPath is empty.
func NewLocalStorage(localPath string) *LocalStorage {
	return &LocalStorage{
		localPath: localPath,
		mutex:     &sync.RWMutex{},
	}
}

func (s *LocalStorage) Initialize() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	configDirs := configdir.New(config.VendorName, config.ApplicationName)
	if s.localPath != "" {
		configDirs.LocalPath = s.localPath
		s.folder = configDirs.QueryFolders(configdir.Local)[0]
	} else {
		s.folder = configDirs.QueryFolders(configdir.Global)[0]
	}

	return s.readIdentity()
}

func (s *LocalStorage) readIdentity() error {
	if !s.folder.Exists(identityFileName) {
		config.Logger.Info("no identity storage found")
		return nil
	}

	data, err := s.folder.ReadFile(identityFileName)
	if err != nil {
		return errors.Wrap(err, "failed to read identity storage")
	}

	err = json.Unmarshal(data, &s.identity)
	if err == nil {
		return nil
	}

	config.Logger.Error("failed to parse identity storage, clearing it", zap.Error(err))
	s.identity = identityStorage{}
	return s.saveIdentityStorage()
}

func (s *LocalStorage) saveIdentityStorage() error {
	identityJson, err := json.Marshal(s.identity)
	if err != nil {
		return errors.Wrap(err, "failed to marshal identity storage")
	}

	err = s.folder.WriteFile(identityFileName, identityJson)
	return errors.Wrap(err, "failed to save identity storage")
}

func (s *LocalStorage) UserToken() protocol.PlayerID {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.identity.Token
}

func (s *LocalStorage) SetUserToken(token protocol.PlayerID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.identity.Token = token
	return s.saveIdentityStorage()
}

func (s *LocalStorage) Username() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.identity.Name
}

func (s *LocalStorage) SetUsername(name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.identity.Name = name
	return s.saveIdentityStorage()
}

func (s *LocalStorage) ResetIdentity() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.identity = identityStorage{}
	return s.saveIdentityStorage()
}

// GenerateUserToken picks a fresh anonymous token.
func GenerateUserToken() (protocol.PlayerID, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, errors.Wrap(err, "failed to generate user token")
	}
	token := binary.BigEndian.Uint64(buf[:]) % maxUserToken
	return protocol.PlayerID(token + 1), nil
}
