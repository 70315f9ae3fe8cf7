package rabbitmq

import (
	"errors"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
)

//Connection is a named AMQP connection with the queues it declares
type Connection struct {
	sync.Mutex
	name    string
	url     string
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Queues  []string
	ApiErr  chan error
}

var (
	poolMutex      sync.Mutex
	connectionPool = make(map[string]*Connection)
)

//NewConnection returns the pooled connection for name, creating it when needed
func NewConnection(name, url string, queues []string) *Connection {
	poolMutex.Lock()
	defer poolMutex.Unlock()
	if c, ok := connectionPool[name]; ok {
		return c
	}
	c := &Connection{
		name:   name,
		url:    url,
		Queues: queues,
		ApiErr: make(chan error, 1),
	}
	connectionPool[name] = c
	return c
}

//GetConnection returns the connection which was instantiated
func GetConnection(name string) *Connection {
	poolMutex.Lock()
	defer poolMutex.Unlock()
	return connectionPool[name]
}

func (c *Connection) Connect() error {
	c.Lock()
	defer c.Unlock()
	return c.connect()
}

func (c *Connection) connect() error {
	var err error
	c.Conn, err = amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("Error in creating rabbitmq connection with %s : %s", c.url, err.Error())
	}
	closed := c.Conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		<-closed
		select {
		case c.ApiErr <- errors.New("Api detect Connection Closed"):
		default:
		}
	}()
	c.Channel, err = c.Conn.Channel()
	if err != nil {
		return fmt.Errorf("Channel: %s", err)
	}
	return nil
}

func (c *Connection) BindQueue() error {
	c.Lock()
	defer c.Unlock()
	return c.bindQueue()
}

func (c *Connection) bindQueue() error {
	for _, q := range c.Queues {
		if _, err := c.Channel.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("error in declaring the queue %s", err)
		}
	}
	return nil
}

//Reconnect reconnects the connection
func (c *Connection) Reconnect() error {
	c.Lock()
	defer c.Unlock()
	return c.reconnect()
}

func (c *Connection) reconnect() error {
	if err := c.connect(); err != nil {
		return err
	}
	return c.bindQueue()
}

//Alive reports whether the underlying connection is open
func (c *Connection) Alive() bool {
	c.Lock()
	defer c.Unlock()
	return c.Conn != nil && !c.Conn.IsClosed()
}

//Publish sends a persistent JSON message to queue, reconnecting once if the connection dropped
func (c *Connection) Publish(queue string, body []byte) error {
	c.Lock()
	defer c.Unlock()
	if c.Conn == nil || c.Conn.IsClosed() || c.Channel == nil {
		if err := c.reconnect(); err != nil {
			return err
		}
	}
	return c.Channel.Publish(
		"",    // exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
}

//Close closes the channel and connection and removes it from the pool
func (c *Connection) Close() error {
	poolMutex.Lock()
	delete(connectionPool, c.name)
	poolMutex.Unlock()

	c.Lock()
	defer c.Unlock()
	if c.Channel != nil {
		c.Channel.Close()
	}
	if c.Conn != nil {
		return c.Conn.Close()
	}
	return nil
}
