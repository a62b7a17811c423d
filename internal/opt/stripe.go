package opt

// StripeCounters_ is the number of counters carried by one CounterStripe_.
const StripeCounters_ = 8
