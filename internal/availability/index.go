package availability

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/avlasov/PFR-BookingService/internal/domain"
)

// Entry занятый интервал в проекции доступности
type Entry struct {
	FacilityID int64
	BookingID  uuid.UUID
	Interval   domain.TimeInterval
}

// facilitySchedule интервалы одного объекта, отсортированные по началу.
// Собственный мьютекс делает check-and-reserve атомарным в пределах объекта,
// не блокируя запросы к другим объектам.
type facilitySchedule struct {
	mu      sync.Mutex
	entries []Entry
}

// Index производная проекция занятых интервалов: facilityID -> расписание.
// Источником истины остается реестр бронирований; проекция полностью
// восстанавливается из него через Rebuild.
type Index struct {
	mu         sync.RWMutex
	facilities map[int64]*facilitySchedule
}

// NewIndex создает пустой индекс доступности
func NewIndex() *Index {
	return &Index{
		facilities: make(map[int64]*facilitySchedule),
	}
}

func (idx *Index) schedule(facilityID int64) *facilitySchedule {
	idx.mu.RLock()
	s, ok := idx.facilities[facilityID]
	idx.mu.RUnlock()
	if ok {
		return s
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if s, ok = idx.facilities[facilityID]; ok {
		return s
	}
	s = &facilitySchedule{}
	idx.facilities[facilityID] = s
	return s
}

// hasOverlapLocked ищет пересечение; вызывается под мьютексом расписания.
// Записи отсортированы по началу: бинарным поиском отсекаем все записи,
// начинающиеся не раньше конца интервала, и сканируем оставшиеся влево.
// Записи отсортированы только по началу, поэтому влево идем до конца списка.
func (s *facilitySchedule) hasOverlapLocked(interval domain.TimeInterval) bool {
	i := sort.Search(len(s.entries), func(i int) bool {
		return !s.entries[i].Interval.Start.Before(interval.End)
	})
	for j := i - 1; j >= 0; j-- {
		if s.entries[j].Interval.Overlaps(interval) {
			return true
		}
	}
	return false
}

// IsAvailable проверяет, свободен ли интервал у объекта
func (idx *Index) IsAvailable(facilityID int64, interval domain.TimeInterval) bool {
	if interval.Validate() != nil {
		return false
	}
	s := idx.schedule(facilityID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.hasOverlapLocked(interval)
}

// Reserve атомарно проверяет и занимает интервал для бронирования.
// Проверка и вставка выполняются под одним мьютексом объекта, поэтому два
// конкурентных запроса на пересекающиеся интервалы не могут пройти оба.
func (idx *Index) Reserve(facilityID int64, bookingID uuid.UUID, interval domain.TimeInterval) error {
	if err := interval.Validate(); err != nil {
		return ErrInvalidInterval
	}

	s := idx.schedule(facilityID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasOverlapLocked(interval) {
		return ErrSlotConflict
	}

	entry := Entry{FacilityID: facilityID, BookingID: bookingID, Interval: interval}
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Interval.Start.After(interval.Start)
	})
	s.entries = append(s.entries, Entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = entry
	return nil
}

// Release освобождает интервал бронирования. Идемпотентна:
// освобождение уже освобожденного бронирования — no-op.
func (idx *Index) Release(facilityID int64, bookingID uuid.UUID) {
	s := idx.schedule(facilityID)
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.BookingID == bookingID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Held возвращает число занятых интервалов объекта
func (idx *Index) Held(facilityID int64) int {
	s := idx.schedule(facilityID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Rebuild восстанавливает проекцию из записей реестра.
// Вызывается на старте сервиса до открытия HTTP-порта.
func (idx *Index) Rebuild(entries []Entry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.facilities = make(map[int64]*facilitySchedule)
	for _, e := range entries {
		s, ok := idx.facilities[e.FacilityID]
		if !ok {
			s = &facilitySchedule{}
			idx.facilities[e.FacilityID] = s
		}
		s.entries = append(s.entries, e)
	}
	for _, s := range idx.facilities {
		sort.Slice(s.entries, func(i, j int) bool {
			return s.entries[i].Interval.Start.Before(s.entries[j].Interval.Start)
		})
	}
}
