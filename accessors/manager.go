package accessors

import (
	"sort"
	"sync"

	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/recyclebin/config"
	"www.velocidex.com/golang/recyclebin/utils"
)

var (
	GlobalDeviceManager = NewDefaultDeviceManager()
)

// Accessors are created from the config because some (e.g. zip)
// need to open a container first.
type AccessorFactory func(config_obj *config.Config) (FileSystemAccessor, error)

// A device manager is a factory for creating accessors.
type DeviceManager interface {
	GetAccessor(scheme string, config_obj *config.Config) (FileSystemAccessor, error)
	Register(scheme string, factory AccessorFactory, description string)
}

type DefaultDeviceManager struct {
	mu           sync.Mutex
	handlers     map[string]AccessorFactory
	descriptions *ordereddict.Dict
}

func NewDefaultDeviceManager() *DefaultDeviceManager {
	return &DefaultDeviceManager{
		handlers:     make(map[string]AccessorFactory),
		descriptions: ordereddict.NewDict(),
	}
}

func (self *DefaultDeviceManager) GetAccessor(
	scheme string, config_obj *config.Config) (FileSystemAccessor, error) {

	self.mu.Lock()
	factory, pres := self.handlers[scheme]
	self.mu.Unlock()

	if !pres {
		return nil, errors.Wrapf(utils.UnknownAccessorErr,
			"filesystem accessor %q", scheme)
	}
	return factory(config_obj)
}

func (self *DefaultDeviceManager) Register(
	scheme string, factory AccessorFactory, description string) {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.handlers[scheme] = factory
	self.descriptions.Set(scheme, description)
}

func (self *DefaultDeviceManager) DescribeAccessors() *ordereddict.Dict {
	self.mu.Lock()
	defer self.mu.Unlock()

	return self.descriptions
}

func (self *DefaultDeviceManager) Names() []string {
	self.mu.Lock()
	defer self.mu.Unlock()

	result := make([]string, 0, len(self.handlers))
	for k := range self.handlers {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

func Register(scheme string, factory AccessorFactory, description string) {
	GlobalDeviceManager.Register(scheme, factory, description)
}

func GetAccessor(scheme string, config_obj *config.Config) (FileSystemAccessor, error) {
	if scheme == "" {
		scheme = "file"
	}
	return GlobalDeviceManager.GetAccessor(scheme, config_obj)
}

func DescribeAccessors() *ordereddict.Dict {
	return GlobalDeviceManager.DescribeAccessors()
}
