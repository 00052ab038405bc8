package cache

// recencyNode is an element of the recency ring.
type recencyNode[K comparable] struct {
	key        K
	prev, next *recencyNode[K]
}

// recencyList orders keys from most to least recently used.
//
// It is a ring around a sentinel root: root.next is the most recent key,
// root.prev the least recent. The sentinel removes every nil check from
// linking and unlinking.
type recencyList[K comparable] struct {
	root recencyNode[K]
	len  int
}

func newRecencyList[K comparable]() *recencyList[K] {
	l := &recencyList[K]{}
	l.root.next = &l.root
	l.root.prev = &l.root
	return l
}

// Len returns the number of keys in the list.
func (l *recencyList[K]) Len() int {
	return l.len
}

// insertAfter links n after at.
func (l *recencyList[K]) insertAfter(n, at *recencyNode[K]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
	l.len++
}

// unlink detaches n from the ring.
func (l *recencyList[K]) unlink(n *recencyNode[K]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = nil
	n.next = nil
	l.len--
}

// PushFront adds key as the most recent entry and returns its node.
func (l *recencyList[K]) PushFront(key K) *recencyNode[K] {
	n := &recencyNode[K]{key: key}
	l.insertAfter(n, &l.root)
	return n
}

// Touch marks n as the most recent entry.
func (l *recencyList[K]) Touch(n *recencyNode[K]) {
	if l.root.next == n {
		return
	}
	l.unlink(n)
	l.insertAfter(n, &l.root)
}

// Remove detaches n.
func (l *recencyList[K]) Remove(n *recencyNode[K]) {
	if n == nil || n.next == nil {
		return
	}
	l.unlink(n)
}

// PopOldest removes and returns the least recent key.
func (l *recencyList[K]) PopOldest() (K, bool) {
	if l.len == 0 {
		var zero K
		return zero, false
	}
	n := l.root.prev
	l.unlink(n)
	return n.key, true
}

// Keys returns the keys from most to least recent.
func (l *recencyList[K]) Keys() []K {
	keys := make([]K, 0, l.len)
	for n := l.root.next; n != &l.root; n = n.next {
		keys = append(keys, n.key)
	}
	return keys
}

// Clear empties the list.
func (l *recencyList[K]) Clear() {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
}
