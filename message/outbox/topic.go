package outbox

// topic is the Postgres staging topic the forwarder drains into the broker.
const topic = "events_to_forward"
