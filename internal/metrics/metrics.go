package metrics

// Namespace is the namespace of all metrics exported by ingress-nginx-errors.
const Namespace = "ingress_nginx_errors"
