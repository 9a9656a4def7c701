package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/librescoot/uart-link/pkg/bridge"
	"github.com/librescoot/uart-link/pkg/link"
	"github.com/librescoot/uart-link/pkg/transport"
)

var (
	serialDevice = flag.String("serial", "/dev/ttymxc1", "Serial device path")
	baudRate     = flag.Int("baud", 115200, "Serial baud rate")
	pollLimit    = flag.Int("poll-limit", link.DefaultPollLimit, "ticks spent in WaitAck before retransmitting")
	capacity     = flag.Int("capacity", link.DefaultCapacity, "frame buffer capacity in bytes")
	tickInterval = flag.Duration("tick-interval", 2*time.Millisecond, "interval between TickTX/TickRX pairs")

	redisAddr = flag.String("redis-addr", "localhost:6379", "Redis server address")
	redisPass = flag.String("redis-pass", "", "Redis password")
	redisDB   = flag.Int("redis-db", 0, "Redis database number")

	publishChannel = flag.String("publish-channel", "link:deliveries", "Redis Pub/Sub channel for delivered payloads")
	commandList    = flag.String("command-list", "link:outbound", "Redis list to pop outbound payloads from")
)

func main() {
	flag.Parse()

	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Printf("Starting link bridge daemon")
	log.Printf("Serial device: %s", *serialDevice)
	log.Printf("Baud rate: %d", *baudRate)
	log.Printf("Redis address: %s", *redisAddr)

	port, err := transport.OpenSerialPort(*serialDevice, *baudRate)
	if err != nil {
		log.Fatalf("Failed to open serial port: %v", err)
	}
	defer port.Close()
	log.Printf("Opened serial port %s", *serialDevice)

	redisClient, err := bridge.NewRedisClient(*redisAddr, *redisPass, *redisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Printf("Connected to Redis")

	br := bridge.New(bridge.Config{
		Redis:          redisClient,
		PublishChannel: *publishChannel,
		CommandListKey: *commandList,
		TickInterval:   *tickInterval,
	})

	engine, err := link.New(link.Config{
		Writer:    port,
		Reader:    port,
		Codec:     link.RawCodec{},
		Capacity:  *capacity,
		PollLimit: *pollLimit,
		OnDeliver: br.OnDeliver,
	})
	if err != nil {
		log.Fatalf("Failed to construct link engine: %v", err)
	}
	br.SetEngine(engine)

	go br.WatchCommands()
	go br.Run()
	log.Printf("Bridge running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	br.Stop()
	log.Printf("Shutting down...")
}
