package ifmgr

import (
	"net/netip"
	"sort"
	"sync"
)

// Manager is the in-memory table of VPP interfaces, keyed both by sw_if_index
// and by name. The southbound layer fills it at connect time; everything else
// only reads.
type Manager struct {
	mu          sync.RWMutex
	bySwIfIndex map[uint32]*Interface
	byName      map[string]*Interface
}

func New() *Manager {
	return &Manager{
		bySwIfIndex: make(map[uint32]*Interface),
		byName:      make(map[string]*Interface),
	}
}

func (m *Manager) Add(iface *Interface) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bySwIfIndex[iface.SwIfIndex] = iface
	if iface.Name != "" {
		m.byName[iface.Name] = iface
	}
}

func (m *Manager) Get(swIfIndex uint32) *Interface {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.bySwIfIndex[swIfIndex]
}

func (m *Manager) GetByName(name string) *Interface {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.byName[name]
}

func (m *Manager) GetSwIfIndex(name string) (uint32, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if iface, ok := m.byName[name]; ok {
		return iface.SwIfIndex, true
	}
	return 0, false
}

func (m *Manager) List() []*Interface {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Interface, 0, len(m.bySwIfIndex))
	for _, iface := range m.bySwIfIndex {
		result = append(result, iface)
	}
	return result
}

func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bySwIfIndex = make(map[uint32]*Interface)
	m.byName = make(map[string]*Interface)
}

// SetIPv6Addresses replaces the interface's IPv6 address list. Addresses are
// kept sorted so default resolution picks a stable "first" address.
func (m *Manager) SetIPv6Addresses(swIfIndex uint32, addrs []netip.Addr) {
	m.mu.Lock()
	defer m.mu.Unlock()

	iface, ok := m.bySwIfIndex[swIfIndex]
	if !ok {
		return
	}

	sorted := make([]netip.Addr, len(addrs))
	copy(sorted, addrs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	iface.IPv6Addresses = sorted
}
