package scheduling

import "sync"

// doctorLocks hands out one mutex per doctor so that conflict-check-then-write
// sequences are serialized per doctor without any cross-doctor contention.
type doctorLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newDoctorLocks() *doctorLocks {
	return &doctorLocks{locks: make(map[string]*sync.Mutex)}
}

// get returns the mutex for doctorID, creating it on first use. Lock entries
// are never evicted; the registry grows with the number of distinct doctors.
func (l *doctorLocks) get(doctorID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[doctorID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[doctorID] = m
	}
	return m
}
