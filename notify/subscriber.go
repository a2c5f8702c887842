package notify

// Subscriber receives a snapshot of the visible items, most recent first,
// after every observable change. A slow subscriber never blocks producers:
// when its buffer is full the stalest snapshot is dropped in favor of the
// newest one.
type Subscriber struct {
	id    uint64
	ch    chan []Item
	queue *Queue
}

// Subscribe attaches a renderer to the queue. buffer must be at least 1;
// smaller values are raised to 1.
func (q *Queue) Subscribe(buffer int) *Subscriber {
	if buffer <= 0 {
		buffer = 1
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextSub++
	sub := &Subscriber{
		id:    q.nextSub,
		ch:    make(chan []Item, buffer),
		queue: q,
	}
	if !q.closed {
		q.subs[sub.id] = sub
	} else {
		close(sub.ch)
	}
	return sub
}

// Items is the snapshot stream. The channel is closed by [Subscriber.Close]
// or [Queue.Close].
func (s *Subscriber) Items() <-chan []Item {
	return s.ch
}

// Close detaches the subscriber and closes its channel.
func (s *Subscriber) Close() {
	if s == nil || s.queue == nil {
		return
	}

	q := s.queue
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.subs[s.id]; !ok {
		return
	}
	delete(q.subs, s.id)
	close(s.ch)
}

func (q *Queue) publishLocked() {
	if len(q.subs) == 0 {
		return
	}

	snapshot := q.snapshotLocked(true)
	for _, sub := range q.subs {
		select {
		case sub.ch <- snapshot:
		default:
			select {
			case <-sub.ch:
				q.stats.Dropped++
			default:
			}
			select {
			case sub.ch <- snapshot:
			default:
			}
		}
	}
}
