package vault

import "container/list"

// noteLRU bounds how many parsed notes stay resident at once.
type noteLRU struct {
	size      int
	evictList *list.List
	items     map[string]*list.Element
}

type lruEntry struct {
	key   string
	value cachedNote
}

func newNoteLRU(size int) *noteLRU {
	if size <= 0 {
		size = 1
	}
	return &noteLRU{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}
}

func (c *noteLRU) get(key string) (cachedNote, bool) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		return ele.Value.(*lruEntry).value, true
	}
	return cachedNote{}, false
}

func (c *noteLRU) put(key string, value cachedNote) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		ele.Value.(*lruEntry).value = value
		return
	}

	ele := c.evictList.PushFront(&lruEntry{key: key, value: value})
	c.items[key] = ele

	if c.evictList.Len() > c.size {
		c.removeOldest()
	}
}

func (c *noteLRU) remove(key string) {
	if ele, hit := c.items[key]; hit {
		c.removeElement(ele)
	}
}

func (c *noteLRU) removeOldest() {
	if ele := c.evictList.Back(); ele != nil {
		c.removeElement(ele)
	}
}

func (c *noteLRU) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*lruEntry)
	delete(c.items, kv.key)
}

func (c *noteLRU) len() int {
	return c.evictList.Len()
}
